package estimate

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of line widths Cached retains by default.
const DefaultCacheSize = 512

// Cached memoizes MeasureWidth of another FontMetrics.
//
// Typing re-estimates the whole text on every keystroke while usually only
// one line changed, so caching per-line widths removes almost all repeated
// measurement. Cached is safe for concurrent use: misses are measured one
// at a time, so the wrapped metrics need not be.
type Cached struct {
	mu      sync.Mutex
	metrics FontMetrics
	widths  *lru.Cache[string, float64]
}

// NewCached wraps metrics with an LRU cache of size entries. A non-positive
// size uses DefaultCacheSize.
func NewCached(metrics FontMetrics, size int) (*Cached, error) {
	if metrics == nil {
		return nil, fmt.Errorf("cached metrics: nil metrics")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	widths, err := lru.New[string, float64](size)
	if err != nil {
		return nil, fmt.Errorf("cached metrics: %w", err)
	}
	return &Cached{metrics: metrics, widths: widths}, nil
}

// LineHeight implements FontMetrics.
func (c *Cached) LineHeight() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics.LineHeight()
}

// MeasureWidth implements FontMetrics.
func (c *Cached) MeasureWidth(line string) float64 {
	if w, ok := c.widths.Get(line); ok {
		return w
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.widths.Peek(line); ok {
		return w
	}
	w := c.metrics.MeasureWidth(line)
	c.widths.Add(line, w)
	return w
}

// Len returns the number of cached widths.
func (c *Cached) Len() int {
	return c.widths.Len()
}

// Purge drops every cached width, e.g. after the wrapped font changed size.
func (c *Cached) Purge() {
	c.widths.Purge()
}
