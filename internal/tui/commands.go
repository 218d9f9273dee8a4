package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoodoo/internal/auth"
	"github.com/idilsaglam/todoodoo/internal/model"
)

// Service is the slice of the API client the TUI drives. *api.Client
// satisfies it.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListTodos(ctx context.Context, token string) ([]model.Todo, error)
	CreateTodo(ctx context.Context, token, title, date string) error
	UpdateTodo(ctx context.Context, token string, id model.ID, completed bool) error
	DeleteTodo(ctx context.Context, token string, id model.ID) error
}

// Results of list requests carry the session that issued them; the list
// drops any that arrive after that session has signed out.
type (
	loginResultMsg struct {
		token string
		err   error
	}
	todosMsg struct {
		session *auth.Session
		todos   []model.Todo
		err     error
	}
	toggledMsg struct {
		session *auth.Session
		id      model.ID
		err     error
	}
	deletedMsg struct {
		session *auth.Session
		id      model.ID
		err     error
	}
	createdMsg struct {
		session *auth.Session
		err     error
	}
	signedOutMsg struct{}
)

// requester runs one API call per command, each bounded by timeout.
type requester struct {
	svc     Service
	timeout time.Duration
}

func (r requester) ctx() (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r requester) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		token, err := r.svc.Login(ctx, username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (r requester) fetch(s *auth.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		todos, err := r.svc.ListTodos(ctx, s.Token)
		return todosMsg{session: s, todos: todos, err: err}
	}
}

func (r requester) toggle(s *auth.Session, t model.Todo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return toggledMsg{session: s, id: t.ID, err: r.svc.UpdateTodo(ctx, s.Token, t.ID, !t.Completed)}
	}
}

func (r requester) remove(s *auth.Session, id model.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return deletedMsg{session: s, id: id, err: r.svc.DeleteTodo(ctx, s.Token, id)}
	}
}

func (r requester) create(s *auth.Session, in model.NewTodo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return createdMsg{session: s, err: r.svc.CreateTodo(ctx, s.Token, in.Title, in.Date)}
	}
}

func signOut() tea.Msg { return signedOutMsg{} }
