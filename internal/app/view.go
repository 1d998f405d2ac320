package app

import "strings"

// View draws the full UI (transcript + composer + status footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()

	transcript := transcriptPane.
		Width(max(0, m.width-transcriptPane.GetHorizontalBorderSize())).
		Height(layout.ViewportHeight).
		Render(m.viewport.View())
	transcript = padBlock(transcript, m.width, layout.TranscriptHeight)

	frame := m.composerFrame()
	composer := frame.
		Width(max(0, m.width-frame.GetHorizontalBorderSize())).
		Render(m.editor.View())

	view := strings.Join([]string{
		transcript,
		composer,
		m.renderStatus(m.width, layout.FooterHeight),
	}, "\n")
	return padBlock(view, m.width, m.height)
}
