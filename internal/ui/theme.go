package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Help                                lipgloss.Style
	SymOK, SymFail, SymBullet, SymCursor          string
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
}

var current = classic()

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Help:        lipgloss.NewStyle().Faint(true),
			SymOK:       "✔",
			SymFail:     "✖",
			SymBullet:   "•",
			SymCursor:   "▶",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("51"),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title:       plain.Bold(true),
			Muted:       plain,
			Accent:      plain,
			Success:     plain,
			Error:       plain,
			Pending:     plain,
			Selected:    plain.Reverse(true),
			Help:        plain,
			SymOK:       "ok",
			SymFail:     "x",
			SymBullet:   "-",
			SymCursor:   ">",
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Help:        lipgloss.NewStyle().Faint(true),
		SymOK:       "✔",
		SymFail:     "✖",
		SymBullet:   "•",
		SymCursor:   ">",
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
	}
}

// Expose what renderers need
func Current() Theme { return current }
