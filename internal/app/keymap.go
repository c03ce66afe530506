package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines global and pane-specific bindings.
type KeyMap struct {
	Quit           key.Binding
	ToggleFocus    key.Binding
	Up             key.Binding
	Down           key.Binding
	Open           key.Binding
	Close          key.Binding
	Refresh        key.Binding
	Top            key.Binding
	Bottom         key.Binding
	Help           key.Binding
	NotesView      key.Binding
	Export         key.Binding
	Note           key.Binding
	EditNote       key.Binding
	DeleteNote     key.Binding
	BaseOlder      key.Binding
	BaseNewer      key.Binding
	ToggleVersions key.Binding
	PageDown       key.Binding
	PageUp         key.Binding
	ScrollDown     key.Binding
	ScrollUp       key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleFocus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		Open:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open comparison")),
		Close:          key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close comparison")),
		Refresh:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload document")),
		Top:            key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:         key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NotesView:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "notes view")),
		Export:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "export")),
		Note:           key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add note")),
		EditNote:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit note")),
		DeleteNote:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete note")),
		BaseOlder:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "older base")),
		BaseNewer:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "newer base")),
		ToggleVersions: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "hide versions")),
		PageDown:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl-f", "page down")),
		PageUp:         key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl-b", "page up")),
		ScrollDown:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl-e", "scroll down")),
		ScrollUp:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl-y", "scroll up")),
	}
}
