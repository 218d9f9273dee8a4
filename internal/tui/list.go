package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/todoodoo/internal/auth"
	"github.com/idilsaglam/todoodoo/internal/model"
	"github.com/idilsaglam/todoodoo/internal/ui"
)

// listModel shows the last successful fetch through the current filter.
// It never patches todos locally: every mutation ends in a re-fetch.
type listModel struct {
	req      requester
	log      zerolog.Logger
	validate *validator.Validate
	session  *auth.Session

	todos    []model.Todo
	loaded   bool
	filter   model.Filter
	deleting map[model.ID]bool
	status   string

	list list.Model
	form addForm
	keys listKeys
	help help.Model

	width, height int
}

func newTodoList(req requester, log zerolog.Logger, v *validator.Validate, s *auth.Session) listModel {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = ui.Current().Help

	m := listModel{
		req:      req,
		log:      log,
		validate: v,
		session:  s,
		filter:   model.FilterAll,
		deleting: map[model.ID]bool{},
		list:     l,
		form:     newAddForm(),
		keys:     newListKeys(),
		help:     help.New(),
	}
	m.setSize(80, 24)
	return m
}

// Init issues the first fetch.
func (m listModel) Init() tea.Cmd { return m.req.fetch(m.session) }

func (m *listModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.form.help.Width = w

	// header (5) + tabs (2) + form (2..8) + status/help (3) + border (2)
	chrome := 14
	if m.form.open {
		chrome = 20
	}
	listH := h - chrome
	if listH < 3 {
		listH = 3
	}
	m.list.SetSize(w-4, listH)
}

// refresh rebuilds the visible rows from todos and the filter.
func (m *listModel) refresh() {
	visible := model.Apply(m.filter, m.todos)
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, todoItem{todo: t, deleting: m.deleting[t.ID]})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
}

func (m listModel) selected() (todoItem, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	return it, ok
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todosMsg:
		if msg.session != m.session {
			return m, nil
		}
		return m.onTodos(msg)
	case toggledMsg:
		if msg.session != m.session {
			return m, nil
		}
		if msg.err != nil {
			m.fail("toggle", msg.id, msg.err, "Could not update todo.")
			return m, nil
		}
		return m, m.req.fetch(m.session)
	case deletedMsg:
		if msg.session != m.session {
			return m, nil
		}
		if msg.err != nil {
			delete(m.deleting, msg.id)
			m.refresh()
			m.fail("delete", msg.id, msg.err, "Could not delete todo.")
			return m, nil
		}
		return m, m.req.fetch(m.session)
	case createdMsg:
		if msg.session != m.session {
			return m, nil
		}
		if msg.err != nil {
			m.form.submitting = false
			m.fail("create", "", msg.err, "Could not add todo.")
			return m, nil
		}
		m.form.reset()
		m.setSize(m.width, m.height)
		return m, m.req.fetch(m.session)
	case tea.KeyMsg:
		if m.form.open {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	if m.form.open {
		return m, m.form.updateInput(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) onTodos(msg todosMsg) (listModel, tea.Cmd) {
	m.loaded = true
	if msg.err != nil {
		m.fail("list", "", msg.err, "Could not load todos.")
		return m, nil
	}
	m.todos = msg.todos
	m.status = ""

	present := make(map[model.ID]bool, len(m.todos))
	for _, t := range m.todos {
		present[t.ID] = true
	}
	for id := range m.deleting {
		if !present[id] {
			delete(m.deleting, id)
		}
	}
	m.refresh()
	return m, nil
}

// fail logs a request failure and leaves a one-line note; nothing is retried.
func (m *listModel) fail(op string, id model.ID, err error, note string) {
	ev := m.log.Warn().Err(err).Str("op", op)
	if id != "" {
		ev = ev.Str("id", id.String())
	}
	ev.Msg("request failed")
	m.status = note
}

func (m listModel) updateKeys(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.SignOut):
		return m, signOut
	case key.Matches(msg, m.keys.Refresh):
		return m, m.req.fetch(m.session)
	case key.Matches(msg, m.keys.Filter):
		m.setFilter(m.filter.Next())
		return m, nil
	case key.Matches(msg, m.keys.All):
		m.setFilter(model.FilterAll)
		return m, nil
	case key.Matches(msg, m.keys.Active):
		m.setFilter(model.FilterActive)
		return m, nil
	case key.Matches(msg, m.keys.Done):
		m.setFilter(model.FilterDone)
		return m, nil
	case key.Matches(msg, m.keys.Add):
		cmd := m.form.show()
		m.setSize(m.width, m.height)
		return m, cmd
	case key.Matches(msg, m.keys.ShowFull):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.req.toggle(m.session, it.todo)
	case key.Matches(msg, m.keys.Delete):
		it, ok := m.selected()
		if !ok || m.deleting[it.todo.ID] {
			return m, nil
		}
		m.deleting[it.todo.ID] = true
		m.refresh()
		return m, m.req.remove(m.session, it.todo.ID)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) updateForm(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.keys.Cancel):
		m.form.reset()
		m.setSize(m.width, m.height)
		return m, nil
	case key.Matches(msg, m.form.keys.Next):
		return m, m.form.switchFocus()
	case key.Matches(msg, m.form.keys.Submit):
		if m.form.submitting {
			return m, nil
		}
		in, err := model.ValidateNewTodo(m.validate, m.form.title.Value(), m.form.date.Value())
		if errors.Is(err, model.ErrIncomplete) {
			return m, nil
		}
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.err = ""
		m.form.submitting = true
		return m, m.req.create(m.session, in)
	}
	return m, m.form.updateInput(msg)
}

func (m *listModel) setFilter(f model.Filter) {
	m.filter = f
	m.list.Select(0)
	m.refresh()
}

func (m listModel) View() string {
	t := ui.Current()

	who := t.Muted.Render(m.session.Label() + " · s sign out")
	brand := t.Brand.Render("■ todoodoo")
	gap := m.width - 4 - lipgloss.Width(brand) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	header := brand + strings.Repeat(" ", gap) + who

	done, _ := model.Stats(m.todos)
	stats := t.Muted.Render(model.StatsLine(m.todos)) + "  " +
		t.Muted.Render(ui.ProgressBar(done, len(m.todos), 20))

	tabs := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		label := strings.ToUpper(string(f))
		if f == m.filter {
			tabs = append(tabs, t.TabActive.Render(label))
		} else {
			tabs = append(tabs, t.TabIdle.Render(label))
		}
	}

	var body string
	switch {
	case !m.loaded:
		body = t.Muted.Render("Loading...")
	case len(m.list.Items()) == 0:
		body = t.Muted.Render(m.filter.EmptyText())
	default:
		body = m.list.View()
	}

	sections := []string{
		header,
		"",
		t.Title.Render("Your Todos"),
		stats,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		body,
		"",
		m.form.View(),
	}
	if m.status != "" {
		sections = append(sections, t.Muted.Render(m.status))
	}
	if !m.form.open {
		sections = append(sections, t.Help.Render(m.help.View(m.keys)))
	}
	return ui.Panel(sections...)
}
