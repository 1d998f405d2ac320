// layout.go centralizes the terminal layout calculations for the composer.
//
// The UI is a vertical stack: the transcript pane on top, the composer pane
// below it and the footer at the bottom. The composer pane is exactly as
// tall as the editor's current Height() plus its border, so the transcript
// takes whatever the composer leaves. The footer reserves either two or three
// rows depending on terminal width and footer content density.
//
// On short terminals the editor's line limit is lowered so that at least
// MinTranscriptRows of transcript stay visible.
package app

import "github.com/treykane/dyntext/estimate"

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	FooterHeight     int // rows reserved for the status footer
	ComposerHeight   int // composer pane height including its border
	TranscriptHeight int // transcript pane height including its border
	EditorWidth      int // usable width inside the composer pane
	ViewportWidth    int // usable width inside the transcript pane
	ViewportHeight   int // usable height inside the transcript pane
}

// calculateLayout computes all UI dimensions from the terminal size and the
// editor's current height.
func (m *Model) calculateLayout() LayoutDimensions {
	footerHeight := m.footerHeightForWidth(m.width)
	composerFrame := m.composerFrame()

	composerHeight := m.editor.Height() + composerFrame.GetVerticalFrameSize()
	transcriptHeight := max(0, m.height-footerHeight-composerHeight)

	return LayoutDimensions{
		FooterHeight:     footerHeight,
		ComposerHeight:   composerHeight,
		TranscriptHeight: transcriptHeight,
		EditorWidth:      max(0, m.width-composerFrame.GetHorizontalFrameSize()),
		ViewportWidth:    max(0, m.width-transcriptPane.GetHorizontalFrameSize()),
		ViewportHeight:   max(0, transcriptHeight-transcriptPane.GetVerticalFrameSize()),
	}
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// editorLineBudget returns the largest line limit that keeps
// MinTranscriptRows of transcript visible, capped at the configured limit.
func (m *Model) editorLineBudget() int {
	if m.height <= 0 {
		return m.cfg.MaxLines
	}
	rows := m.height -
		m.footerHeightForWidth(m.width) -
		m.composerFrame().GetVerticalFrameSize() -
		transcriptPane.GetVerticalFrameSize() -
		MinTranscriptRows
	spacing := float64(m.editor.LineSpacing())
	// Every line takes at least one row.
	lines := min(m.cfg.MaxLines, rows)
	for lines > 1 && estimate.HeightForLines(lines, estimate.CellMetrics{}, spacing) > float64(rows) {
		lines--
	}
	return max(lines, 1)
}

// updateLayout pushes the current terminal size into the editor and the
// transcript viewport. It runs after resizes and whenever the composer may
// have changed height.
func (m *Model) updateLayout() {
	if budget := m.editorLineBudget(); budget != m.editor.MaxLines() {
		m.editor.SetMaxLines(budget)
	}
	m.editor.SetWidth(max(0, m.width-m.composerFrame().GetHorizontalFrameSize()))
	m.applyLayout(m.calculateLayout())
}

// applyLayout updates the viewport dimensions to match the calculated
// layout. A transcript scrolled to its end stays there.
func (m *Model) applyLayout(layout LayoutDimensions) {
	atBottom := m.viewport.AtBottom()
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight
	if atBottom {
		m.viewport.GotoBottom()
	}
}
