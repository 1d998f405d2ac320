package estimate

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CellMetrics measures text in terminal cells. Every line is one row high.
//
// ANSI escape sequences are stripped before measuring so styled text counts
// only its visible cells. Widths follow grapheme clusters (an emoji with a
// skin-tone modifier is one cluster, two cells wide).
type CellMetrics struct {
	// EastAsian counts East Asian ambiguous-width characters as two cells,
	// matching terminals configured for CJK locales.
	EastAsian bool
}

// LineHeight implements FontMetrics.
func (CellMetrics) LineHeight() float64 { return 1 }

// MeasureWidth implements FontMetrics.
func (c CellMetrics) MeasureWidth(line string) float64 {
	return float64(c.Cells(line))
}

// Cells returns the number of terminal cells line occupies.
func (c CellMetrics) Cells(line string) int {
	if line == "" {
		return 0
	}
	visible := ansi.Strip(line)
	if c.EastAsian {
		cond := runewidth.NewCondition()
		cond.EastAsianWidth = true
		return cond.StringWidth(visible)
	}
	return uniseg.StringWidth(visible)
}
