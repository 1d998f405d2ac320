package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/dyntext/editor"
	"github.com/treykane/dyntext/internal/config"
)

var (
	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	transcriptPane  = paneStyle.Copy().BorderForeground(lipgloss.Color("62"))
	composerPane    = paneStyle.Copy().BorderForeground(lipgloss.Color("204"))
	composerBlurred = paneStyle.Copy().BorderForeground(lipgloss.Color("240"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	editStatus      = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// composerStyle builds the editor style from the configured colors.
func composerStyle(cfg config.Config) editor.Style {
	style := editor.DefaultStyle()
	style.Text = style.Text.Foreground(lipgloss.Color("252"))
	style.CursorLine = style.CursorLine.Foreground(lipgloss.Color("252"))
	style.BlurredText = mutedStyle
	return style.WithColors(cfg.Foreground, cfg.PlaceholderColor)
}

// composerFrame returns the pane style matching the editor's focus state.
func (m *Model) composerFrame() lipgloss.Style {
	if m.editor.Focused() {
		return composerPane
	}
	return composerBlurred
}
