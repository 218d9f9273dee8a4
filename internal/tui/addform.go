package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoodoo/internal/ui"
)

const dateLayout = "2006-01-02"

type addForm struct {
	open       bool
	submitting bool
	err        string

	title textinput.Model
	date  textinput.Model
	focus int

	keys formKeys
	help help.Model
}

func newAddForm() addForm {
	title := textinput.New()
	title.Prompt = "> "
	title.Placeholder = "What needs to be done?"
	title.CharLimit = 200

	date := textinput.New()
	date.Prompt = "> "
	date.Placeholder = dateLayout
	date.CharLimit = len(dateLayout)

	return addForm{title: title, date: date, keys: newFormKeys("add todo"), help: help.New()}
}

func (f *addForm) show() tea.Cmd {
	f.open = true
	f.err = ""
	f.focus = 0
	f.date.Blur()
	return f.title.Focus()
}

// reset clears and closes the form.
func (f *addForm) reset() {
	f.open = false
	f.submitting = false
	f.err = ""
	f.focus = 0
	f.title.SetValue("")
	f.date.SetValue("")
	f.title.Blur()
	f.date.Blur()
}

func (f *addForm) switchFocus() tea.Cmd {
	if f.focus == 0 {
		f.focus = 1
		f.title.Blur()
		return f.date.Focus()
	}
	f.focus = 0
	f.date.Blur()
	return f.title.Focus()
}

// updateInput forwards msg to the focused input.
func (f *addForm) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.date, cmd = f.date.Update(msg)
	}
	return cmd
}

func (f addForm) View() string {
	t := ui.Current()
	if !f.open {
		return t.Muted.Render("+ Add a new todo (a)")
	}

	button := "[ Add Todo ]"
	if f.submitting {
		button = "Adding..."
	}
	lines := []string{
		t.Title.Render("Add a new todo"),
		f.title.View(),
		f.date.View(),
	}
	if f.err != "" {
		lines = append(lines, t.Error.Render(f.err))
	}
	lines = append(lines, t.Brand.Render(button), t.Help.Render(f.help.View(f.keys)))
	return ui.Panel(lines...)
}
