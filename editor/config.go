package editor

import "github.com/treykane/dyntext/estimate"

// Config configures the editor Model.
type Config struct {
	// Placeholder is shown, indented by Style.PlaceholderIndent, while the
	// text is empty.
	Placeholder string

	// Text is the initial content.
	Text string

	// MaxLines caps the number of visible lines. Zero uses
	// estimate.DefaultMaxLines; negative values act as 1.
	MaxLines int

	// LineSpacing is the number of blank rows rendered between lines.
	// Negative values act as 0.
	LineSpacing int

	// Width is the initial container width in cells. Zero means the width is
	// not known yet: no wrapping is counted until SetWidth is called.
	Width int

	// CharLimit limits the number of characters; 0 means unlimited.
	CharLimit int

	// Metrics measures text for the height estimate. It must measure in
	// terminal cells. Nil uses estimate.CellMetrics{}.
	Metrics estimate.FontMetrics

	// Style controls rendering. Nil uses DefaultStyle().
	Style *Style

	// KeyMap overrides the default bindings. Nil uses
	// DefaultKeyMap(SubmitOnEnter).
	KeyMap *KeyMap

	// SubmitOnEnter makes Enter submit and Alt+Enter insert a newline.
	// Otherwise Enter inserts a newline and Ctrl+S submits.
	SubmitOnEnter bool
}

func (c Config) maxLines() int {
	switch {
	case c.MaxLines == 0:
		return estimate.DefaultMaxLines
	case c.MaxLines < 1:
		return 1
	default:
		return c.MaxLines
	}
}

func (c Config) lineSpacing() int {
	return max(c.LineSpacing, 0)
}

func (c Config) metrics() estimate.FontMetrics {
	if c.Metrics == nil {
		return estimate.CellMetrics{}
	}
	return c.Metrics
}
