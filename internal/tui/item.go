package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoodoo/internal/model"
	"github.com/idilsaglam/todoodoo/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item.
type todoItem struct {
	todo     model.Todo
	deleting bool
}

func (i todoItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders one todo per line:
//
//	> ☑ Pay bills  · 5 Mar 2025
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	title := it.todo.Title
	if it.todo.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}

	line := fmt.Sprintf("%s %s", box, title)
	if d := it.todo.DisplayDate(); d != "" {
		line += t.Muted.Render("  · " + d)
	}
	if it.deleting {
		line += t.Muted.Render("  (deleting…)")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+line)
}
