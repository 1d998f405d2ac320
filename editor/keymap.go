package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings the editor handles itself. Everything else is
// forwarded to the wrapped textarea.
type KeyMap struct {
	Submit  key.Binding
	Newline key.Binding

	// PageUp and PageDown move the cursor by a page, and are ignored while
	// the editor is a single line tall.
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default bindings. With submitOnEnter, Enter
// submits and Alt+Enter/Ctrl+J insert a newline; otherwise Enter inserts a
// newline and Ctrl+S submits.
func DefaultKeyMap(submitOnEnter bool) KeyMap {
	km := KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	}
	if submitOnEnter {
		km.Submit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
		km.Newline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline"))
		return km
	}
	km.Submit = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit"))
	km.Newline = key.NewBinding(key.WithKeys("enter", "ctrl+j"), key.WithHelp("enter", "newline"))
	return km
}

// ShortHelp returns bindings for a one-line help view.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Submit, km.Newline}
}

// FullHelp returns every binding, grouped for a multi-column help view.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Submit, km.Newline},
		{km.PageUp, km.PageDown},
	}
}
