package app

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copyLastMessageToClipboard copies the most recent transcript message to
// the system clipboard.
func (m *Model) copyLastMessageToClipboard() {
	if len(m.messages) == 0 {
		m.status = "No message to copy"
		return
	}
	content := m.messages[len(m.messages)-1].text
	if err := clipboard.WriteAll(content); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = fmt.Sprintf("Copied last message (%d chars)", len([]rune(content)))
}
