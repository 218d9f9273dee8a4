package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, checkbox symbols and the panel border.
// All renderers pull from Current().
type Theme struct {
	Name string

	Brand, Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                                 lipgloss.Style
	TabActive, TabIdle                                   lipgloss.Style

	BoxChecked, BoxUnchecked string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var current = classic()

// SetTheme switches to classic (default), neon or mono.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:         "classic",
		Brand:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		TabActive:    lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		TabIdle:      lipgloss.NewStyle().Padding(0, 1).Faint(true),
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Brand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.TabActive = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	t.BoxChecked, t.BoxUnchecked = "◼", "◻"
	t.BorderColor = lipgloss.Color("13")
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:         "mono",
		Brand:        plain.Bold(true),
		Title:        plain.Bold(true),
		Muted:        plain,
		Accent:       plain,
		Success:      plain,
		Error:        plain,
		Pending:      plain,
		Selected:     plain.Bold(true),
		Done:         plain,
		Help:         plain,
		TabActive:    plain.Bold(true).Padding(0, 1),
		TabIdle:      plain.Padding(0, 1),
		BoxChecked:   "[x]",
		BoxUnchecked: "[ ]",
		Border:       lipgloss.NormalBorder(),
		BorderColor:  lipgloss.NoColor{},
	}
}
