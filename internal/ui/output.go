package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Out and Err receive CLI output; tests swap them.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

func OK(msg string) {
	t := Current()
	fmt.Fprintln(Out, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(Err, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted follow-up line to Err.
func Hint(msg string) {
	fmt.Fprintln(Err, Current().Muted.Render(msg))
}

// Panel prints lines inside a framed box using the current theme.
func Panel(lines []string) {
	fmt.Fprintln(Out, PanelString(strings.Join(lines, "\n")))
}

func PanelString(inner string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(inner)
}
