package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoodoo/internal/api"
	"github.com/idilsaglam/todoodoo/internal/auth"
	"github.com/idilsaglam/todoodoo/internal/model"
)

var errFake = fmt.Errorf("%w: status 500", api.ErrRequestFailed)

type update struct {
	id        model.ID
	completed bool
}

// fakeService records calls. It applies mutations to its own list so a
// following fetch sees them, the way the real service would.
type fakeService struct {
	mu sync.Mutex

	users map[string]string
	token string
	todos []model.Todo

	failList, failUpdate, failDelete, failCreate bool

	logins  int
	lists   int
	creates []model.NewTodo
	updates []update
	deletes []model.ID
}

func newFake(todos ...model.Todo) *fakeService {
	return &fakeService{
		users: map[string]string{"demo": "demo"},
		token: "tok-demo",
		todos: todos,
	}
}

func (f *fakeService) Login(_ context.Context, username, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if pw, ok := f.users[username]; !ok || pw != password {
		return "", errFake
	}
	return f.token, nil
}

func (f *fakeService) ListTodos(_ context.Context, token string) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.failList || token != f.token {
		return nil, errFake
	}
	return append([]model.Todo(nil), f.todos...), nil
}

func (f *fakeService) CreateTodo(_ context.Context, _ string, title, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, model.NewTodo{Title: title, Date: date})
	if f.failCreate {
		return errFake
	}
	f.todos = append(f.todos, model.Todo{ID: model.ID(fmt.Sprint(len(f.todos) + 100)), Title: title, Date: date})
	return nil
}

func (f *fakeService) UpdateTodo(_ context.Context, _ string, id model.ID, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update{id: id, completed: completed})
	if f.failUpdate {
		return errFake
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Completed = completed
		}
	}
	return nil
}

func (f *fakeService) DeleteTodo(_ context.Context, _ string, id model.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.failDelete {
		return errFake
	}
	out := f.todos[:0]
	for _, t := range f.todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	f.todos = out
	return nil
}

func (f *fakeService) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: "1", Title: "Buy milk", Completed: false},
		{ID: "2", Title: "Pay bills", Completed: true},
	}
}

// ---- driving helpers ----

func send(t *testing.T, m App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(App)
	require.True(t, ok)
	return app, cmd
}

// exec runs cmd and feeds its message back, once.
func exec(t *testing.T, m App, cmd tea.Cmd) (App, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// signedIn returns an app past login with the first fetch applied.
func signedIn(t *testing.T, svc *fakeService) App {
	t.Helper()
	m := New(Options{Service: svc, Logger: zerolog.Nop(), Session: auth.New(svc.token, auth.SourceEnv)})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = exec(t, m, m.Init())
	require.True(t, m.list.loaded)
	return m
}

func visibleTitles(m App) []string {
	var out []string
	for _, it := range m.list.list.Items() {
		if ti, ok := it.(todoItem); ok {
			out = append(out, ti.todo.Title)
		}
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
