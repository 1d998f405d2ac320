package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/dyntext/editor"
)

// handleSpinnerTick advances the spinner shown in the footer while a render
// is in flight.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleWindowResize updates layout dimensions after terminal resize and
// re-wraps the transcript at the new width.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.updateLayout()
	return m, m.requestRender()
}

// handleHeightChanged re-runs the layout after the composer grew or shrank.
// The transcript stays pinned to its last message when it was already there.
func (m *Model) handleHeightChanged(msg editor.HeightChangedMsg) (tea.Model, tea.Cmd) {
	appLog.Debug("composer height changed", "height", msg.Height, "lines", msg.LineCount)
	m.updateLayout()
	return m, nil
}

// handleSubmit moves the composer text into the transcript.
func (m *Model) handleSubmit(msg editor.SubmitMsg) (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(msg.Value)
	if text == "" {
		m.status = "Nothing to send"
		return m, nil
	}
	m.appendMessage(text)
	m.editor.Reset()
	m.clearDraft()
	m.updateLayout()
	m.status = fmt.Sprintf("Sent %d chars", utf8.RuneCountInString(text))
	return m, m.renderNow()
}

// handleRenderRequest validates and dispatches a debounced render.
func (m *Model) handleRenderRequest(msg renderRequestMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.renderSeq || msg.width != m.pendingWidth {
		return m, nil
	}
	return m, renderTranscriptCmd(m.transcriptMarkdown(), m.revision, msg.width, msg.seq)
}

// handleRenderResult caches a completed render and shows it when it is still
// current: same sequence, same transcript revision and same width bucket.
func (m *Model) handleRenderResult(msg renderResultMsg) (tea.Model, tea.Cmd) {
	m.renderCache.add(msg.revision, msg.width, msg.content)

	if msg.seq != m.renderSeq || msg.revision != m.revision {
		return m, nil
	}
	if msg.width == renderWidthBucket(m.viewport.Width) {
		m.showTranscript(msg.content)
		m.clearRenderingState()
	}
	return m, nil
}

// handleKey routes key presses: host bindings first, then the composer when
// it is focused, otherwise the transcript viewport.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveDraftOnExit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleFocus):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.Clear):
		m.clearTranscript()
		return m, nil
	case key.Matches(msg, m.keys.CopyLast):
		m.copyLastMessageToClipboard()
		return m, nil
	}

	if m.editor.Focused() {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.updateLayout()
		return m, cmd
	}
	return m.handleTranscriptKey(msg)
}

// handleTranscriptKey handles keys while the composer is blurred.
func (m *Model) handleTranscriptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case msg.String() == "enter" || msg.String() == "i":
		return m, m.toggleFocus()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.editor.Focused() {
		m.editor.Blur()
		m.status = "Transcript focused"
		m.updateLayout()
		return nil
	}
	m.status = "Composer focused"
	cmd := m.editor.Focus()
	m.updateLayout()
	return cmd
}

func (m *Model) clearTranscript() {
	if len(m.messages) == 0 {
		m.status = "Transcript is empty"
		return
	}
	m.messages = nil
	m.revision++
	m.viewport.SetContent(emptyTranscript())
	m.clearRenderingState()
	m.status = "Transcript cleared"
}
