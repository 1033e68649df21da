package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/account/internal/form"
)

// Run shows the form until the user quits and reports whether it was
// submitted at least once.
func Run(ctx context.Context, f *form.Form, opts Options) (bool, error) {
	p := tea.NewProgram(New(ctx, f, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("run form: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.Submitted(), nil
}
