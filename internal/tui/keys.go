package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Toggle   key.Binding
	AddChild key.Binding
	Remove   key.Binding
	Undo     key.Binding
	Photo    key.Binding
	Submit   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit/press")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle status")),
		AddChild: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add child")),
		Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove child")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo remove")),
		Photo:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset photo")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save changes")),
		Reset:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset form")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.AddChild, k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate, k.Toggle},
		{k.AddChild, k.Remove, k.Undo, k.Photo},
		{k.Submit, k.Reset, k.Help, k.Quit},
	}
}
