package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/dyntext/estimate"
	"github.com/treykane/dyntext/internal/logging"
)

var editorLog = logging.New("editor")

// Model is a Bubble Tea text input whose height follows its content.
type Model struct {
	// KeyMap holds the bindings handled by the editor itself.
	KeyMap KeyMap

	textarea    textarea.Model
	style       Style
	metrics     estimate.FontMetrics
	placeholder string
	maxLines    int
	lineSpacing int

	// width is the last container width reported by the host; 0 until the
	// first SetWidth.
	width  int
	result estimate.Result
}

// New returns an editor configured by cfg. It starts one line tall, or
// taller when cfg.Text already needs more.
func New(cfg Config) Model {
	style := DefaultStyle()
	if cfg.Style != nil {
		style = *cfg.Style
	}
	km := DefaultKeyMap(cfg.SubmitOnEnter)
	if cfg.KeyMap != nil {
		km = *cfg.KeyMap
	}

	ta := textarea.New()
	ta.CharLimit = cfg.CharLimit
	style.apply(&ta)
	ta.KeyMap.InsertNewline = km.Newline
	// The textarea refuses newlines past MaxHeight; the visible height is
	// clamped here instead so content can grow beyond it and scroll.
	ta.MaxHeight = 0
	ta.Blur()

	m := Model{
		KeyMap:      km,
		textarea:    ta,
		style:       style,
		metrics:     cfg.metrics(),
		placeholder: cfg.Placeholder,
		maxLines:    cfg.maxLines(),
		lineSpacing: cfg.lineSpacing(),
	}
	m.textarea.Placeholder = m.indentedPlaceholder()
	m.textarea.SetHeight(1)
	if cfg.Width > 0 {
		m.SetWidth(cfg.Width)
	}
	if cfg.Text != "" {
		m.SetValue(cfg.Text)
	} else {
		m.resize()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles submit and page keys itself and forwards everything else to
// the textarea. When the text changed it re-estimates the height and, if the
// height changed, returns a command producing HeightChangedMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.textarea.Focused() {
		switch {
		case key.Matches(keyMsg, m.KeyMap.Submit):
			value := m.textarea.Value()
			return m, func() tea.Msg { return SubmitMsg{Value: value} }
		case key.Matches(keyMsg, m.KeyMap.PageUp):
			m.scrollPage(-1)
			return m, nil
		case key.Matches(keyMsg, m.KeyMap.PageDown):
			m.scrollPage(1)
			return m, nil
		}
	}

	before := m.textarea.Value()
	prevHeight := m.Height()

	// Forward at full height so the textarea never scrolls while there is
	// still room to grow; resize shrinks it back afterwards.
	m.textarea.SetHeight(m.maxLines)
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	if m.textarea.Value() != before {
		m.estimate()
	}
	m.resize()

	if m.Height() != prevHeight {
		editorLog.Debug("height changed", "from", prevHeight, "to", m.Height(), "lines", m.result.LineCount)
		return m, tea.Batch(cmd, m.heightChangedCmd())
	}
	return m, cmd
}

// View renders the editor. Line spacing is drawn as blank rows between the
// textarea's rows, so the output is exactly Height() rows tall.
func (m Model) View() string {
	view := m.textarea.View()
	if m.lineSpacing == 0 {
		return view
	}
	rows := strings.Split(view, "\n")
	return strings.Join(rows, strings.Repeat("\n", m.lineSpacing+1))
}

// SetWidth reports the container width in cells and re-estimates the height.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 0)
	m.textarea.SetHeight(m.maxLines)
	m.textarea.SetWidth(m.width)
	m.estimate()
	m.resize()
}

// Width returns the width last passed to SetWidth.
func (m Model) Width() int {
	return m.width
}

// SetValue replaces the text and moves the cursor to its end.
func (m *Model) SetValue(s string) {
	m.textarea.SetHeight(m.maxLines)
	m.textarea.SetValue(s)
	m.estimate()
	m.resize()
}

// Value returns the current text.
func (m Model) Value() string {
	return m.textarea.Value()
}

// Reset clears the text and returns the editor to a single line.
func (m *Model) Reset() {
	m.textarea.Reset()
	m.estimate()
	m.resize()
}

// Focus focuses the editor so it receives key input.
func (m *Model) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes focus from the editor.
func (m *Model) Blur() {
	m.textarea.Blur()
}

// Focused reports whether the editor has focus.
func (m Model) Focused() bool {
	return m.textarea.Focused()
}

// Height returns the number of rows View occupies: LineCount rows plus
// LineSpacing rows between each pair of lines.
func (m Model) Height() int {
	return m.result.Rows()
}

// LineCount returns the number of visible lines, within [1, MaxLines].
func (m Model) LineCount() int {
	return m.result.LineCount
}

// MaxLines returns the normalized line limit.
func (m Model) MaxLines() int {
	return m.maxLines
}

// LineSpacing returns the number of blank rows drawn between lines.
func (m Model) LineSpacing() int {
	return m.lineSpacing
}

// Estimate returns the most recent height estimate.
func (m Model) Estimate() estimate.Result {
	return m.result
}

// ShowPlaceholder reports whether the placeholder is visible.
func (m Model) ShowPlaceholder() bool {
	return m.textarea.Value() == ""
}

// AllowInternalScroll reports whether the editor scrolls its own content.
// A single-line editor never scrolls.
func (m Model) AllowInternalScroll() bool {
	return m.result.LineCount > 1
}

// Placeholder returns the placeholder text.
func (m Model) Placeholder() string {
	return m.placeholder
}

// SetPlaceholder replaces the placeholder text.
func (m *Model) SetPlaceholder(s string) {
	m.placeholder = s
	m.textarea.Placeholder = m.indentedPlaceholder()
}

// SetMaxLines changes the line limit and re-estimates the height. Values
// below 1 act as 1.
func (m *Model) SetMaxLines(n int) {
	m.maxLines = max(n, 1)
	m.textarea.SetHeight(m.maxLines)
	m.estimate()
	m.resize()
}

func (m *Model) estimate() {
	width := 0.0
	if m.width > 0 {
		width = float64(m.textarea.Width())
	}
	m.result = estimate.Estimate(m.textarea.Value(), m.metrics, estimate.Constraints{
		ContainerWidth: width,
		MaxLines:       m.maxLines,
		LineSpacing:    float64(m.lineSpacing),
	})
}

// resize applies the current estimate to the textarea and lets it scroll the
// cursor back into view if the estimate undercounted the wrapped rows.
func (m *Model) resize() {
	if m.result.LineCount == 0 {
		m.estimate()
	}
	m.textarea.SetHeight(m.result.LineCount)
	m.textarea, _ = m.textarea.Update(nil)
}

func (m *Model) scrollPage(dir int) {
	if !m.AllowInternalScroll() {
		return
	}
	for i := 0; i < m.result.LineCount; i++ {
		if dir < 0 {
			m.textarea.CursorUp()
		} else {
			m.textarea.CursorDown()
		}
	}
	m.textarea, _ = m.textarea.Update(nil)
}

func (m Model) heightChangedCmd() tea.Cmd {
	msg := HeightChangedMsg{Height: m.Height(), LineCount: m.result.LineCount}
	return func() tea.Msg { return msg }
}

func (m Model) indentedPlaceholder() string {
	if m.placeholder == "" {
		return ""
	}
	return strings.Repeat(" ", max(m.style.PlaceholderIndent, 0)) + m.placeholder
}
