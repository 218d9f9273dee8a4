package tui

import "github.com/charmbracelet/bubbles/key"

type listKeys struct {
	Up, Down  key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Add       key.Binding
	Filter    key.Binding
	All       key.Binding
	Active    key.Binding
	Done      key.Binding
	Refresh   key.Binding
	SignOut   key.Binding
	Quit      key.Binding
	ShowFull  key.Binding
	CloseFull key.Binding
}

func newListKeys() listKeys {
	return listKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Filter:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		All:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Done:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		SignOut:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign out")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ShowFull:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		CloseFull: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "less")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Add, k.Filter, k.ShowFull}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Add, k.Filter, k.All, k.Active, k.Done},
		{k.Refresh, k.SignOut, k.Quit, k.CloseFull},
	}
}

type formKeys struct {
	Submit, Next, Cancel key.Binding
}

func newFormKeys(submit string) formKeys {
	return formKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", submit)),
		Next:   key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "next field")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeys) ShortHelp() []key.Binding { return []key.Binding{k.Submit, k.Next, k.Cancel} }

func (k formKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
