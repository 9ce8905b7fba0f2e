package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the read-only viewer's keybindings and doubles as a
// bubbles/help.KeyMap.
type keyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Detail   key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var defaultKeys = keyMap{
	PrevWeek: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous week"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next week"),
	),
	Detail: key.NewBinding(
		key.WithKeys("d", "enter"),
		key.WithHelp("d", "toggle day breakdown"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy week as text"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Detail, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek},
		{k.Detail, k.Copy},
		{k.Help, k.Quit},
	}
}
