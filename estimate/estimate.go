// Package estimate computes how tall a text container should be for a block
// of text.
//
// The estimate is a deliberately simple geometry calculation: hard line
// breaks are counted, every hard line is measured with a FontMetrics
// provider, and each full container width a line spans adds one wrapped
// line. The total is clamped to a maximum line count and converted to a
// height using the font's line height and an optional inter-line spacing.
//
// Estimate is a pure function. It never fails: degenerate inputs (a zero
// container width, a non-positive line limit, NaN or infinite measurements)
// are normalized so the result is always finite, positive and within
// [1, MaxLines].
//
// Usage:
//
//	res := estimate.Estimate(text, estimate.CellMetrics{}, estimate.Constraints{
//		ContainerWidth: 40,
//		MaxLines:       5,
//	})
//	height := res.Rows()
package estimate

import (
	"math"
	"strings"
)

// DefaultMaxLines is the line limit used by hosts that do not configure one.
const DefaultMaxLines = 5

// FontMetrics supplies the two measurements the estimator needs from a font.
//
// Units are up to the implementation (terminal cells, pixels, millimetres)
// but LineHeight, MeasureWidth and Constraints.ContainerWidth must agree.
type FontMetrics interface {
	// LineHeight is the vertical space a single line occupies.
	LineHeight() float64
	// MeasureWidth returns the horizontal space line occupies when laid out
	// on a single row. line never contains a newline.
	MeasureWidth(line string) float64
}

// Constraints are the layout inputs that accompany a text snapshot.
type Constraints struct {
	// ContainerWidth is the width available to a line before it wraps. It is
	// zero until the host has measured its layout; a zero width disables wrap
	// counting.
	ContainerWidth float64

	// MaxLines caps the number of visible lines. Values below 1 act as 1.
	MaxLines int

	// LineSpacing is the gap inserted between consecutive lines. Negative and
	// non-finite values act as 0.
	LineSpacing float64
}

// Result is the derived height of a text container.
type Result struct {
	// LineCount is the number of visible lines, within [1, MaxLines].
	LineCount int

	// PixelHeight is LineCount lines plus the spacing between them, in the
	// units of the FontMetrics that produced it.
	PixelHeight float64

	// ExplicitLines is the number of hard lines in the text (newlines + 1),
	// before clamping.
	ExplicitLines int

	// WrapLines is the number of additional wrapped lines counted across all
	// hard lines. Counting stops once it alone reaches MaxLines.
	WrapLines int

	// MaxLines is the normalized line limit the result was clamped to.
	MaxLines int
}

// Rows returns PixelHeight rounded up to a whole number, for hosts that lay
// out in integral units such as terminal rows.
func (r Result) Rows() int {
	rows := math.Ceil(r.PixelHeight)
	switch {
	case math.IsNaN(rows) || rows < 1:
		return 1
	case rows >= float64(math.MaxInt):
		return math.MaxInt
	}
	return int(rows)
}

// Overflows reports whether the text needs more lines than MaxLines, meaning
// part of it is only reachable by scrolling inside the container.
func (r Result) Overflows() bool {
	return r.ExplicitLines+r.WrapLines > r.MaxLines
}

// Estimate derives the line count and height of text laid out with metrics
// under the given constraints.
func Estimate(text string, metrics FontMetrics, c Constraints) Result {
	maxLines := normalizeMaxLines(c.MaxLines)
	spacing := normalizeSpacing(c.LineSpacing)
	lineHeight := normalizeLineHeight(metrics)

	explicit := strings.Count(text, "\n") + 1
	wraps := wrapLineCount(text, metrics, normalizeWidth(c.ContainerWidth), maxLines)

	total := min(explicit, maxLines) + wraps
	lineCount := total
	if total >= maxLines {
		lineCount = maxLines
	}

	return Result{
		LineCount:     lineCount,
		PixelHeight:   heightForLines(lineCount, lineHeight, spacing),
		ExplicitLines: explicit,
		WrapLines:     wraps,
		MaxLines:      maxLines,
	}
}

// HeightForLines returns the height of n lines, without trailing spacing
// after the last one. n below 1 is treated as 1.
func HeightForLines(n int, metrics FontMetrics, lineSpacing float64) float64 {
	return heightForLines(max(n, 1), normalizeLineHeight(metrics), normalizeSpacing(lineSpacing))
}

// heightForLines saturates at math.MaxFloat64 so huge line heights or
// spacings never produce +Inf.
func heightForLines(n int, lineHeight, spacing float64) float64 {
	if n <= 1 {
		return lineHeight
	}
	h := lineHeight + float64(n-1)*(lineHeight+spacing)
	if math.IsInf(h, 0) || math.IsNaN(h) {
		return math.MaxFloat64
	}
	return h
}

// wrapLineCount sums, over every hard line, how many whole container widths
// the line spans. A line narrower than the container contributes nothing and
// a line one unit wider contributes nothing either: the division truncates.
func wrapLineCount(text string, metrics FontMetrics, width float64, limit int) int {
	if width <= 0 || metrics == nil {
		return 0
	}

	count := 0
	rest := text
	for count < limit {
		line, tail, more := strings.Cut(rest, "\n")
		count += wrapsFor(metrics.MeasureWidth(line), width, limit)
		if !more {
			break
		}
		rest = tail
	}
	return min(count, limit)
}

// wrapsFor is trunc(lineWidth / width), with non-finite and negative ratios
// resolved to 0 and large ratios capped at limit.
func wrapsFor(lineWidth, width float64, limit int) int {
	ratio := lineWidth / width
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 0
	}
	if ratio >= float64(limit) {
		return limit
	}
	return int(ratio)
}

func normalizeMaxLines(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func normalizeSpacing(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return 0
	}
	return s
}

func normalizeWidth(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

func normalizeLineHeight(metrics FontMetrics) float64 {
	if metrics == nil {
		return 1
	}
	h := metrics.LineHeight()
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return 1
	}
	return h
}
