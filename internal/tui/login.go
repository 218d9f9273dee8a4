package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/todoodoo/internal/ui"
)

const loginFailedText = "Invalid credentials. Please try again."

type loginState int

const (
	loginIdle loginState = iota
	loginSubmitting
	loginError
)

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type loginModel struct {
	req      requester
	log      zerolog.Logger
	validate *validator.Validate

	username textinput.Model
	password textinput.Model
	focus    int

	state loginState
	err   string

	keys formKeys
	help help.Model
}

func newLogin(req requester, log zerolog.Logger, v *validator.Validate) loginModel {
	u := textinput.New()
	u.Prompt = "> "
	u.Placeholder = "your username"
	u.CharLimit = 128
	u.Focus()

	p := textinput.New()
	p.Prompt = "> "
	p.Placeholder = "••••••••"
	p.CharLimit = 256
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'

	keys := newFormKeys("sign in")
	keys.Cancel = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))

	return loginModel{
		req:      req,
		log:      log,
		validate: v,
		username: u,
		password: p,
		keys:     keys,
		help:     help.New(),
	}
}

func (m loginModel) Init() tea.Cmd { return textinput.Blink }

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.err != nil || msg.token == "" {
			m.log.Info().Err(msg.err).Msg("login failed")
			m.state = loginError
			m.err = loginFailedText
			return m, nil
		}
		m.state = loginIdle
		m.err = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			m.switchFocus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.state == loginSubmitting {
		return m, nil
	}
	c := credentials{Username: m.username.Value(), Password: m.password.Value()}
	if err := m.validate.Struct(c); err != nil {
		return m, nil
	}
	m.state = loginSubmitting
	m.err = ""
	return m, m.req.login(c.Username, c.Password)
}

func (m *loginModel) switchFocus() {
	if m.focus == 0 {
		m.focus = 1
		m.username.Blur()
		m.password.Focus()
		return
	}
	m.focus = 0
	m.password.Blur()
	m.username.Focus()
}

func (m loginModel) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Brand.Render("■ todoodoo") + "\n")
	b.WriteString(t.Muted.Render("Sign in to manage your todos") + "\n\n")

	if m.err != "" {
		b.WriteString(t.Error.Render(m.err) + "\n\n")
	}

	b.WriteString(t.Muted.Render("USERNAME") + "\n")
	b.WriteString(m.username.View() + "\n\n")
	b.WriteString(t.Muted.Render("PASSWORD") + "\n")
	b.WriteString(m.password.View() + "\n\n")

	button := "[ Sign In ]"
	switch {
	case m.state == loginSubmitting:
		button = "Signing in..."
		b.WriteString(t.Muted.Render(button))
	case m.username.Value() == "" || m.password.Value() == "":
		b.WriteString(t.Muted.Render(button))
	default:
		b.WriteString(t.Brand.Render(button))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.Panel(b.String()),
		t.Help.Render(m.help.View(m.keys)),
	)
}
