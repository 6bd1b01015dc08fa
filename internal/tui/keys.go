package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Prev    key.Binding
	Next    key.Binding
	Edit    key.Binding
	Cancel  key.Binding
	Filter  key.Binding
	Add     key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Clear   key.Binding
	Export  key.Binding
	Quit    key.Binding
	Force   key.Binding
	TabNext key.Binding
	TabPrev key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev value")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next value")),
		Prev:    key.NewBinding(key.WithKeys("h", "shift+tab"), key.WithHelp("h", "prev column")),
		Next:    key.NewBinding(key.WithKeys("l", "tab"), key.WithHelp("l", "next column")),
		Edit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Add:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add")),
		Delete:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:   key.NewBinding(key.WithKeys("ctrl+c")),
		TabNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		TabPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev filter")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Left, k.Right, k.Filter, k.Add, k.Delete, k.Reload, k.Clear, k.Export, k.Quit}
}

func (k keyMap) filterHelp() []key.Binding {
	return []key.Binding{k.TabNext, k.Edit, k.Left, k.Right, k.Cancel}
}
