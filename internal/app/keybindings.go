package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings handled by the composer host. Editing keys
// belong to the editor's own KeyMap.
type keyMap struct {
	Quit        key.Binding
	ToggleFocus key.Binding
	Clear       key.Binding
	CopyLast    key.Binding
	Help        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		ToggleFocus: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "focus")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		CopyLast:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy last")),
		Help:        key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
		ScrollUp:    key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/pgup", "scroll")),
		ScrollDown:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/pgdn", "scroll")),
	}
}

// helpSegments returns "key action" labels for the footer. While the
// composer is focused the editor bindings are listed first.
func (m *Model) helpSegments() []string {
	var bindings []key.Binding
	if m.editor.Focused() {
		bindings = append(bindings, m.editor.KeyMap.ShortHelp()...)
		if m.editor.AllowInternalScroll() {
			bindings = append(bindings, m.editor.KeyMap.PageUp)
		}
		bindings = append(bindings, m.keys.ToggleFocus, m.keys.Quit)
	} else {
		bindings = append(bindings, m.keys.ScrollUp, m.keys.ScrollDown, m.keys.ToggleFocus, m.keys.Help, m.keys.Quit)
	}
	if m.showHelp || !m.editor.Focused() {
		bindings = append(bindings, m.keys.Clear, m.keys.CopyLast)
	}

	segments := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		segments = append(segments, h.Key+" "+h.Desc)
	}
	return segments
}
