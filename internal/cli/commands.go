package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoodoo/internal/auth"
	"github.com/idilsaglam/todoodoo/internal/model"
	"github.com/idilsaglam/todoodoo/internal/ui"
)

func (a *app) lsCmd() *cobra.Command {
	var filter string
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return usage("ls: %v", err)
			}
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			todos, err := a.client.ListTodos(cmd.Context(), s.Token)
			if err != nil {
				a.log.Warn().Err(err).Str("op", "list").Msg("request failed")
				return failed("could not load todos")
			}
			fmt.Fprintln(a.stdout, ui.Panel(listLines(todos, f, group)...))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, active or done")
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := model.ValidateNewTodo(a.validate, strings.Join(args, " "), date)
			if err != nil {
				return usage("add: %v", err)
			}
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.client.CreateTodo(cmd.Context(), s.Token, in.Title, in.Date); err != nil {
				a.log.Warn().Err(err).Str("op", "create").Msg("request failed")
				return failed("could not add todo")
			}
			ui.OK(a.stdout, "added")
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "due date, YYYY-MM-DD (required)")
	return cmd
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the todo at a 1-based index (as shown by ls)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, todo, err := a.pick(cmd, "done", args[0])
			if err != nil {
				return err
			}
			if err := a.client.UpdateTodo(cmd.Context(), s.Token, todo.ID, !todo.Completed); err != nil {
				a.log.Warn().Err(err).Str("op", "toggle").Str("id", todo.ID.String()).Msg("request failed")
				return failed("could not update todo")
			}
			ui.OK(a.stdout, "toggled")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the todo at a 1-based index (as shown by ls)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, todo, err := a.pick(cmd, "rm", args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteTodo(cmd.Context(), s.Token, todo.ID); err != nil {
				a.log.Warn().Err(err).Str("op", "delete").Str("id", todo.ID.String()).Msg("request failed")
				return failed("could not delete todo")
			}
			ui.OK(a.stdout, "removed")
			return nil
		},
	}
}

// pick resolves a 1-based index against a fresh fetch.
func (a *app) pick(cmd *cobra.Command, name, arg string) (*auth.Session, model.Todo, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, model.Todo{}, usage("%s: not a number: %s", name, arg)
	}
	s, err := a.session(cmd.Context())
	if err != nil {
		return nil, model.Todo{}, err
	}
	todos, err := a.client.ListTodos(cmd.Context(), s.Token)
	if err != nil {
		a.log.Warn().Err(err).Str("op", "list").Msg("request failed")
		return nil, model.Todo{}, failed("could not load todos")
	}
	if n < 1 || n > len(todos) {
		fmt.Fprintln(a.stderr, ui.Current().Muted.Render("Hint: run `todoodoo ls` to see valid indexes"))
		return nil, model.Todo{}, usage("index out of range: have %d, got %d", len(todos), n)
	}
	return s, todos[n-1], nil
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show what the current token says about you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "source: %s\n", s.Source)
			c, err := s.Claims()
			if errors.Is(err, auth.ErrOpaqueToken) {
				fmt.Fprintln(a.stdout, "Opaque token (cannot introspect locally).")
				return nil
			}
			if err != nil {
				return failed("whoami: %v", err)
			}
			fmt.Fprintf(a.stdout, "user: %s\n", c.Subject)
			if c.Issuer != "" {
				fmt.Fprintf(a.stdout, "issuer: %s\n", c.Issuer)
			}
			if c.ExpiresAt != nil {
				fmt.Fprintf(a.stdout, "expires: %s\n", c.ExpiresAt.UTC().Format(time.RFC3339))
			} else {
				fmt.Fprintln(a.stdout, "expires: (unknown)")
			}
			return nil
		},
	}
}

// -------------- rendering helpers --------------

const titleWidth = 80

type indexed struct {
	n    int
	todo model.Todo
}

func listLines(todos []model.Todo, f model.Filter, group bool) []string {
	t := ui.Current()
	done, pending := model.Stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Your Todos"),
		t.Success.Render("✔"), done,
		t.Pending.Render("•"), pending,
		t.Accent.Render("Total"), len(todos),
	)

	var shown []indexed
	for i, td := range todos {
		if f.Match(td) {
			shown = append(shown, indexed{n: i + 1, todo: td})
		}
	}

	lines := []string{
		header,
		t.Muted.Render(ui.ProgressBar(done, len(todos), 28)),
		t.Muted.Render(model.StatsLine(todos)),
		"",
	}
	switch {
	case len(shown) == 0:
		lines = append(lines, t.Muted.Render(f.EmptyText()))
	case group:
		lines = append(lines, groupLines(shown)...)
	default:
		lines = append(lines, flatLines(shown)...)
	}
	lines = append(lines, "", t.Muted.Render(`Tip: add with todoodoo add "Water plants" --date 2025-03-05`))
	return lines
}

func flatLines(items []indexed) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("(none)")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := t.Muted.Render(t.BoxUnchecked)
		title := clip(it.todo.Title)
		if it.todo.Completed {
			box = t.Success.Render(t.BoxChecked)
			title = t.Done.Render(title)
		}
		line := fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", it.n)), box, title)
		if d := it.todo.DisplayDate(); d != "" {
			line += t.Muted.Render("  · " + d)
		}
		out = append(out, line)
	}
	return out
}

// clip shortens a title to titleWidth terminal cells.
func clip(title string) string {
	return ansi.Truncate(title, titleWidth, "...")
}

func groupLines(items []indexed) []string {
	t := ui.Current()
	var pend, done []indexed
	for _, it := range items {
		if it.todo.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, flatLines(pend)...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	lines = append(lines, flatLines(done)...)
	return lines
}
