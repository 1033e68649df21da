package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/account/internal/form"
	"github.com/idilsaglam/account/internal/photo"
	"github.com/idilsaglam/account/internal/ui"
)

const labelWidth = 16

func (m Model) View() string {
	t := ui.Current()
	controls := buildControls(m.form)
	cursor := clamp(m.cursor, len(controls))

	var b strings.Builder
	b.WriteString(t.Title.Render("Account Settings"))
	b.WriteString("\n")

	lastHeading := ""
	childNo := 0
	for i, c := range controls {
		if h := heading(c, &childNo); h != "" && h != lastHeading {
			b.WriteString("\n" + t.Accent.Render(h) + "\n")
			lastHeading = h
		}
		b.WriteString(m.row(c, i == cursor))
		b.WriteString("\n")
	}

	if m.editing {
		title := "Edit " + m.edit.label
		if m.edit.kind == ctrlPhoto {
			title = "Upload New Photo " + t.Muted.Render("("+m.opts.PhotoHint+")")
		}
		if m.editErr != "" {
			title += " " + t.Error.Render(m.editErr)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		b.WriteString(bar.Render(title + "\n" + m.ti.View()))
		b.WriteString("\n")
	}

	if m.pending > 0 {
		b.WriteString(t.Pending.Render(fmt.Sprintf("%s %d photo(s) decoding", t.SymBullet, m.pending)) + "\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(t.Error.Render(t.SymFail+" "+m.status) + "\n")
		} else {
			b.WriteString(t.Success.Render(t.SymOK+" "+m.status) + "\n")
		}
	}
	b.WriteString(m.help.View(m.keys))
	return ui.PanelString(b.String())
}

// heading returns the section title a control belongs to.
func heading(c control, childNo *int) string {
	switch {
	case c.section == form.SectionSpouse:
		return "Spouse Details"
	case c.kind == ctrlAddChild:
		return "Children Details"
	case c.kind == ctrlRemoveChild:
		*childNo++
		return fmt.Sprintf("Child %d", *childNo)
	case c.kind == ctrlSubmit:
		return "Actions"
	}
	return ""
}

func (m Model) row(c control, selected bool) string {
	t := ui.Current()
	prefix := "  "
	if selected {
		prefix = t.Selected.Render(t.SymCursor) + " "
	}

	var line string
	switch c.kind {
	case ctrlAddChild, ctrlRemoveChild, ctrlSubmit, ctrlReset:
		line = "[ " + c.label + " ]"
	case ctrlPhoto:
		line = label(c.label) + photo.Describe(value(m.form, c)) + t.Muted.Render("  enter upload · r reset")
	case ctrlStatus:
		line = label(c.label) + value(m.form, c) + t.Muted.Render("  space toggle")
	default:
		v := value(m.form, c)
		if v == "" {
			v = t.Muted.Render(placeholder(c))
		}
		line = label(c.label) + v
	}
	if selected {
		line = t.Selected.Render(line)
	}
	if msg, ok := m.errs[c.key()]; ok {
		line += "  " + t.Error.Render(msg)
	}
	return prefix + line
}

func label(s string) string {
	return fmt.Sprintf("%-*s", labelWidth, s)
}

func placeholder(c control) string {
	if c.kind == ctrlDate {
		return "MM-DD-YYYY"
	}
	return c.label
}
