package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/dyntext/editor"
	"github.com/treykane/dyntext/estimate"
	"github.com/treykane/dyntext/internal/config"
)

// chatMessage is one submitted composer value.
type chatMessage struct {
	text   string
	sentAt time.Time
}

// Options configures the demo composer.
type Options struct {
	Config config.Config

	// DraftPath is where the unsent composer text is kept between runs.
	// Empty disables drafts.
	DraftPath string
}

// Model holds the Bubble Tea state for the demo composer.
type Model struct {
	cfg       config.Config
	draftPath string

	// UI widgets
	editor   editor.Model
	viewport viewport.Model
	spinner  spinner.Model
	keys     keyMap
	status   string
	showHelp bool

	// Layout sizing
	width  int
	height int

	// Transcript state
	messages []chatMessage
	revision int

	// pixelMetrics measures the composer text with the configured font when
	// it is not a terminal font. Nil when the footer shows no pixel estimate.
	pixelMetrics estimate.FontMetrics
	fontLabel    string

	// Debounced render bookkeeping
	rendering    bool
	renderSeq    int
	pendingWidth int
	renderCache  *renderCache

	// Draft bookkeeping
	savedDraft string

	now func() time.Time
}

// New prepares the composer from opts and restores any saved draft.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	spec, err := config.ParseFontSpec(cfg.Font)
	if err != nil {
		return nil, err
	}
	fontMetrics, err := spec.Metrics()
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", cfg.Font, err)
	}

	editorMetrics := estimate.FontMetrics(estimate.CellMetrics{})
	var pixelMetrics estimate.FontMetrics
	if spec.Cells() {
		editorMetrics = fontMetrics
	} else {
		pixelMetrics = fontMetrics
	}

	style := composerStyle(cfg)
	ed := editor.New(editor.Config{
		Placeholder:   cfg.Placeholder,
		MaxLines:      cfg.MaxLines,
		LineSpacing:   cfg.LineSpacing,
		CharLimit:     InputCharLimit,
		Metrics:       editorMetrics,
		Style:         &style,
		SubmitOnEnter: cfg.SubmitOnEnter,
	})
	ed.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Line

	cache, err := newRenderCache(maxRenderCacheEntries)
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:          cfg,
		draftPath:    opts.DraftPath,
		editor:       ed,
		viewport:     viewport.New(0, 0),
		spinner:      spin,
		keys:         defaultKeyMap(),
		status:       "Ready",
		pixelMetrics: pixelMetrics,
		fontLabel:    spec.String(),
		renderCache:  cache,
		now:          time.Now,
	}
	m.viewport.SetContent(emptyTranscript())
	m.restoreDraft()
	return m, nil
}

// Init starts the cursor blink, the spinner and the draft autosave loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.scheduleDraftAutosave())
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case editor.HeightChangedMsg:
		return m.handleHeightChanged(msg)
	case editor.SubmitMsg:
		return m.handleSubmit(msg)
	case renderRequestMsg:
		return m.handleRenderRequest(msg)
	case renderResultMsg:
		return m.handleRenderResult(msg)
	case draftAutoSaveTickMsg:
		return m.handleDraftAutoSaveTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// transcriptMarkdown joins the transcript into one markdown document.
func (m *Model) transcriptMarkdown() string {
	if len(m.messages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		parts = append(parts, fmt.Sprintf("**You** · %s\n\n%s", msg.sentAt.Format("15:04"), msg.text))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// appendMessage adds text to the transcript, dropping the oldest messages
// past MaxTranscriptMessages.
func (m *Model) appendMessage(text string) {
	m.messages = append(m.messages, chatMessage{text: text, sentAt: m.now()})
	if over := len(m.messages) - MaxTranscriptMessages; over > 0 {
		m.messages = append(m.messages[:0:0], m.messages[over:]...)
	}
	m.revision++
}

func emptyTranscript() string {
	return mutedStyle.Render("No messages yet. Type below to start.")
}
