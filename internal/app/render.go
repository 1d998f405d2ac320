// render.go implements debounced, cached markdown rendering for the
// transcript pane.
//
// Rendering markdown through Glamour is relatively expensive, so this module
// applies two optimizations to keep typing in the composer responsive:
//
// # Debouncing
//
// A terminal resize re-wraps the transcript at the new width. Dragging a
// window edge produces a burst of resize events, so requestRender increments
// a sequence number and schedules the render after RenderDebounce. Only the
// request carrying the latest sequence is executed. Submitting a message
// renders immediately through renderNow.
//
// # Caching
//
// Completed renders are kept in an LRU keyed by transcript revision and
// width bucket, so resizing back to a recent width is instant. Glamour
// renderers are themselves cached per width bucket in a second, global LRU.
// The rendering style is determined by the DYNTEXT_GLAMOUR_STYLE or
// GLAMOUR_STYLE environment variable, defaulting to "dark".
package app

import (
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

// renderKey identifies one rendered transcript.
type renderKey struct {
	revision int // transcript revision, bumped on every change
	width    int // width bucket used for word wrapping
}

// renderCache stores rendered transcripts.
type renderCache struct {
	entries *lru.Cache[renderKey, string]
}

func newRenderCache(size int) (*renderCache, error) {
	entries, err := lru.New[renderKey, string](size)
	if err != nil {
		return nil, err
	}
	return &renderCache{entries: entries}, nil
}

func (c *renderCache) get(revision, width int) (string, bool) {
	return c.entries.Get(renderKey{revision: revision, width: width})
}

func (c *renderCache) add(revision, width int, content string) {
	c.entries.Add(renderKey{revision: revision, width: width}, content)
}

// renderRequestMsg is emitted by the debounce timer to trigger the actual
// render. Requests whose seq is no longer current are discarded.
type renderRequestMsg struct {
	width int
	seq   int
}

// renderResultMsg carries the completed render back to the Update loop.
type renderResultMsg struct {
	revision int
	width    int
	seq      int
	content  string
}

var (
	// rendererCacheMu serializes access to the renderer cache and to the
	// renderers themselves, which are not safe for concurrent use.
	rendererCacheMu sync.Mutex

	// rendererCache maps width buckets to reusable Glamour renderers.
	rendererCache = mustRendererCache()
)

func mustRendererCache() *lru.Cache[int, *glamour.TermRenderer] {
	cache, err := lru.New[int, *glamour.TermRenderer](maxRendererCacheEntries)
	if err != nil {
		panic(err)
	}
	return cache
}

// requestRender schedules a debounced render of the transcript at the
// current viewport width. A cached render is shown immediately instead.
func (m *Model) requestRender() tea.Cmd {
	if len(m.messages) == 0 {
		m.viewport.SetContent(emptyTranscript())
		m.clearRenderingState()
		return nil
	}
	width := renderWidthBucket(m.viewport.Width)
	if content, ok := m.renderCache.get(m.revision, width); ok {
		m.showTranscript(content)
		m.clearRenderingState()
		return nil
	}
	m.rendering = true
	m.renderSeq++
	seq := m.renderSeq
	m.pendingWidth = width
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{width: width, seq: seq}
	})
}

// renderNow renders the transcript without debouncing.
func (m *Model) renderNow() tea.Cmd {
	if len(m.messages) == 0 {
		m.viewport.SetContent(emptyTranscript())
		m.clearRenderingState()
		return nil
	}
	width := renderWidthBucket(m.viewport.Width)
	m.rendering = true
	m.renderSeq++
	m.pendingWidth = width
	return renderTranscriptCmd(m.transcriptMarkdown(), m.revision, width, m.renderSeq)
}

// renderTranscriptCmd renders markdown on a background goroutine.
func renderTranscriptCmd(markdown string, revision, width, seq int) tea.Cmd {
	return func() tea.Msg {
		return renderResultMsg{
			revision: revision,
			width:    width,
			seq:      seq,
			content:  renderMarkdown(markdown, width),
		}
	}
}

// renderMarkdown converts markdown to ANSI-formatted output. If the renderer
// cannot be created or rendering fails, the raw markdown is returned so the
// user still sees the text.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()

	renderer, err := getRenderer(width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return strings.TrimRight(out, "\n")
}

// getRenderer returns a cached Glamour renderer for width, creating one if
// needed. Callers hold rendererCacheMu.
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if renderer, ok := rendererCache.Get(width); ok {
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Add(width, renderer)
	return renderer, nil
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache.Purge()
}

// glamourStyleOption resolves the Glamour rendering style from environment
// variables. The lookup order is:
//
//  1. DYNTEXT_GLAMOUR_STYLE (app-specific override)
//  2. GLAMOUR_STYLE (Glamour's own environment variable)
//  3. "dark" (avoids OSC background queries that can leak escape sequences
//     into the composer)
//
// The special value "auto" delegates to Glamour's auto-detection.
func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("DYNTEXT_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	if style == "" {
		style = "dark"
	}
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	switch style {
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}

func (m *Model) showTranscript(content string) {
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *Model) clearRenderingState() {
	m.rendering = false
	m.pendingWidth = 0
}
