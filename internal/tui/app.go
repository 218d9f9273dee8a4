// Package tui is the full-screen todoodoo client: a login view and a todo
// list view, switched by whether a bearer token is held in memory.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/todoodoo/internal/auth"
)

type Options struct {
	Service Service
	// Timeout bounds each request; zero means no deadline.
	Timeout time.Duration
	Logger  zerolog.Logger
	// Session starts the program signed in (TODOODOO_TOKEN).
	Session *auth.Session
}

// App is the root model. The session lives only here, in memory.
type App struct {
	req      requester
	log      zerolog.Logger
	validate *validator.Validate

	session *auth.Session
	login   loginModel
	list    listModel

	width, height int
}

func New(opts Options) App {
	req := requester{svc: opts.Service, timeout: opts.Timeout}
	v := validator.New()
	m := App{
		req:      req,
		log:      opts.Logger,
		validate: v,
		session:  opts.Session,
		login:    newLogin(req, opts.Logger, v),
		width:    80,
		height:   24,
	}
	if m.session != nil {
		m.list = newTodoList(req, opts.Logger, v, m.session)
	}
	return m
}

// Session is the current token holder, nil when signed out.
func (m App) Session() *auth.Session { return m.session }

func (m App) Init() tea.Cmd {
	if m.session != nil {
		return m.list.Init()
	}
	return m.login.Init()
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.session != nil {
			m.list.setSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case loginResultMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		if msg.err != nil || msg.token == "" {
			return m, cmd
		}
		m.session = auth.New(msg.token, auth.SourceLogin)
		m.log.Info().Str("user", m.session.Label()).Msg("signed in")
		m.list = newTodoList(m.req, m.log, m.validate, m.session)
		m.list.setSize(m.width, m.height)
		return m, m.list.Init()

	case signedOutMsg:
		m.log.Info().Msg("signed out")
		m.session = nil
		m.list = listModel{}
		m.login = newLogin(m.req, m.log, m.validate)
		return m, m.login.Init()
	}

	var cmd tea.Cmd
	if m.session == nil {
		m.login, cmd = m.login.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m App) View() string {
	if m.session == nil {
		return m.login.View()
	}
	return m.list.View()
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
