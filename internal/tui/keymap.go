package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MarkRead key.Binding
	Remove   key.Binding
	Follow   key.Binding
	ShowAll  key.Binding
	Refresh  key.Binding
	Logout   key.Binding
	Quit     key.Binding

	NextField      key.Binding
	ToggleRegister key.Binding
	Dismiss        key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MarkRead: key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter/r", "mark read")),
	Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Follow:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow back")),
	ShowAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all/digest")),
	Refresh:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	Logout:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	NextField:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	ToggleRegister: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sign in/register")),
	Dismiss:        key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
}
