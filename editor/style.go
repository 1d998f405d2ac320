package editor

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

// Style controls the editor's rendering.
type Style struct {
	Base        lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	CursorLine  lipgloss.Style

	// BlurredText is used for the text while the editor is not focused.
	BlurredText lipgloss.Style

	// PlaceholderIndent is the number of cells the placeholder is shifted
	// right, so it lines up with where the cursor sits in typed text.
	PlaceholderIndent int
}

// DefaultStyle returns the default editor style.
func DefaultStyle() Style {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	return Style{
		Base:              lipgloss.NewStyle(),
		Text:              lipgloss.NewStyle(),
		Placeholder:       muted,
		CursorLine:        lipgloss.NewStyle(),
		BlurredText:       muted,
		PlaceholderIndent: 1,
	}
}

// WithColors returns a copy of s with the text and placeholder foreground
// colors replaced. Empty values keep the current color.
func (s Style) WithColors(foreground, placeholder string) Style {
	if foreground != "" {
		s.Text = s.Text.Foreground(lipgloss.Color(foreground))
		s.CursorLine = s.CursorLine.Foreground(lipgloss.Color(foreground))
	}
	if placeholder != "" {
		s.Placeholder = s.Placeholder.Foreground(lipgloss.Color(placeholder))
	}
	return s
}

// apply configures the textarea chrome: no prompt, no line numbers and a
// blank end-of-buffer marker, so only the text itself is drawn.
func (s Style) apply(ta *textarea.Model) {
	focused, blurred := textarea.DefaultStyles()

	focused.Base = s.Base
	focused.Text = s.Text
	focused.CursorLine = s.CursorLine
	focused.Placeholder = s.Placeholder
	focused.EndOfBuffer = s.Text

	blurred.Base = s.Base
	blurred.Text = s.BlurredText
	blurred.CursorLine = s.BlurredText
	blurred.Placeholder = s.Placeholder
	blurred.EndOfBuffer = s.BlurredText

	ta.FocusedStyle = focused
	ta.BlurredStyle = blurred
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.EndOfBufferCharacter = ' '
}
