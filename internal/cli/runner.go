// Package cli is the todoodoo command line. With no subcommand it starts
// the TUI; the subcommands are one-shot equivalents for scripting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoodoo/internal/api"
	"github.com/idilsaglam/todoodoo/internal/auth"
	"github.com/idilsaglam/todoodoo/internal/config"
	"github.com/idilsaglam/todoodoo/internal/tui"
	"github.com/idilsaglam/todoodoo/internal/ui"
	"github.com/idilsaglam/todoodoo/pkg/logger"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// exitErr carries the exit code for a message printed with ui.Fail.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func usage(format string, a ...any) error {
	return &exitErr{code: exitUsage, msg: fmt.Sprintf(format, a...)}
}

func failed(format string, a ...any) error {
	return &exitErr{code: exitError, msg: fmt.Sprintf(format, a...)}
}

type app struct {
	stdout, stderr io.Writer

	cfg      *config.Config
	client   *api.Client
	log      zerolog.Logger
	closeLog func() error
	validate *validator.Validate

	apiURL   string
	theme    string
	username string
	password string
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, validate: validator.New()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.closeLog != nil {
		_ = a.closeLog()
	}
	if err == nil {
		return exitOK
	}

	var ee *exitErr
	if errors.As(err, &ee) {
		ui.Fail(stderr, ee.msg)
		return ee.code
	}
	// cobra's own argument and flag errors
	ui.Fail(stderr, err.Error())
	return exitUsage
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todoodoo",
		Short: "Terminal client for the todoodoo service",
		Long: `todoodoo - a terminal client for the todoodoo service.

With no subcommand the interactive list opens. Sign in there; the token is
kept in memory only and is gone when the program exits.

One-shot subcommands authenticate with TODOODOO_TOKEN, or with
--username/--password for that single invocation.`,
		Example: `  todoodoo
  TODOODOO_TOKEN=... todoodoo ls --filter active
  todoodoo add "Buy milk" --date 2025-03-05 -u demo -p demo
  todoodoo done 2
  todoodoo rm 3`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "service base URL (overrides TODOODOO_API_URL)")
	pf.StringVar(&a.theme, "theme", "", "classic, neon or mono (overrides TODOODOO_THEME)")
	pf.StringVarP(&a.username, "username", "u", "", "sign in as this user for a one-shot command")
	pf.StringVarP(&a.password, "password", "p", "", "password for --username")

	root.AddCommand(a.lsCmd(), a.addCmd(), a.doneCmd(), a.rmCmd(), a.whoamiCmd())
	return root
}

// setup loads configuration, logging, theme and the API client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return failed("%v", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(a.apiURL, "/")
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	a.cfg = cfg

	w, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return failed("%v", err)
	}
	a.closeLog = w.Close
	a.log = logger.Init(logger.Options{Level: cfg.LogLevel, Output: w})

	ui.SetTheme(cfg.Theme)
	a.client = api.New(cfg.API.BaseURL, cfg.API.Timeout, api.WithLogger(a.log))
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	a.log.Info().Str("api", a.client.BaseURL()).Msg("starting tui")
	err := tui.Run(cmd.Context(), tui.Options{
		Service: a.client,
		Timeout: a.cfg.API.Timeout,
		Logger:  a.log,
		Session: auth.FromEnv(a.cfg.Token),
	})
	if err != nil {
		return failed("tui: %v", err)
	}
	return nil
}

// session returns the env token, or logs in with the flags.
func (a *app) session(ctx context.Context) (*auth.Session, error) {
	if s := auth.FromEnv(a.cfg.Token); s != nil {
		return s, nil
	}
	if a.username == "" || a.password == "" {
		return nil, usage("not signed in: set TODOODOO_TOKEN or pass --username and --password")
	}
	token, err := a.client.Login(ctx, a.username, a.password)
	if err != nil {
		a.log.Info().Err(err).Str("username", a.username).Msg("login failed")
		return nil, failed("Invalid credentials. Please try again.")
	}
	return auth.New(token, auth.SourceLogin), nil
}
