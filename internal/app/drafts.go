package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// draftRecord is the unsent composer text stored on disk between runs.
type draftRecord struct {
	// Content holds the composer text at the time of the save.
	Content string `json:"content"`

	// UpdatedAt records when the draft was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// draftAutoSaveTickMsg is emitted by the periodic autosave timer.
type draftAutoSaveTickMsg struct{}

// scheduleDraftAutosave returns a command that emits a draftAutoSaveTickMsg
// after draftAutoSaveInterval. It runs for the lifetime of the app when
// drafts are enabled.
func (m *Model) scheduleDraftAutosave() tea.Cmd {
	if m.draftPath == "" {
		return nil
	}
	return tea.Tick(draftAutoSaveInterval, func(time.Time) tea.Msg {
		return draftAutoSaveTickMsg{}
	})
}

// handleDraftAutoSaveTick saves the composer text when it changed since the
// last save and reschedules the next tick. Save errors are logged only.
func (m *Model) handleDraftAutoSaveTick(_ draftAutoSaveTickMsg) (tea.Model, tea.Cmd) {
	if err := m.saveDraft(); err != nil {
		appLog.Warn("auto-save draft", "path", m.draftPath, "error", err)
	}
	return m, m.scheduleDraftAutosave()
}

// saveDraft writes the composer text to the draft file. An empty composer
// removes the draft instead.
func (m *Model) saveDraft() error {
	if m.draftPath == "" {
		return nil
	}
	content := m.editor.Value()
	if content == m.savedDraft {
		return nil
	}
	if content == "" {
		m.clearDraft()
		return nil
	}

	record := draftRecord{Content: content, UpdatedAt: m.now()}
	if err := writeDraft(m.draftPath, record); err != nil {
		return err
	}
	m.savedDraft = content
	return nil
}

// saveDraftOnExit saves the draft before quitting and reports failures in
// the status line.
func (m *Model) saveDraftOnExit() {
	if err := m.saveDraft(); err != nil {
		m.setStatusError("Draft save failed", err, "path", m.draftPath)
	}
}

// restoreDraft loads a saved draft into the composer.
func (m *Model) restoreDraft() {
	if m.draftPath == "" {
		return
	}
	record, err := readDraft(m.draftPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			appLog.Warn("read draft", "path", m.draftPath, "error", err)
		}
		return
	}
	if record.Content == "" {
		return
	}
	m.editor.SetValue(record.Content)
	m.savedDraft = record.Content
	m.status = fmt.Sprintf("Restored draft from %s", record.UpdatedAt.Format("Jan 2 15:04"))
}

// clearDraft removes the draft file after the composer was submitted or
// emptied.
func (m *Model) clearDraft() {
	m.savedDraft = ""
	if m.draftPath == "" {
		return
	}
	if err := os.Remove(m.draftPath); err != nil && !os.IsNotExist(err) {
		appLog.Warn("remove draft", "path", m.draftPath, "error", err)
	}
}

func writeDraft(path string, record draftRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}
	if err := os.WriteFile(path, data, DraftFilePermission); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

func readDraft(path string) (draftRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return draftRecord{}, err
	}
	var record draftRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return draftRecord{}, fmt.Errorf("parse draft: %w", err)
	}
	return record, nil
}
