// Package tui renders the account form as a Bubble Tea program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/account/internal/form"
	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
	"github.com/idilsaglam/account/internal/ui"
)

// Options tune the interactive form.
type Options struct {
	MaxChildren int // 0 = unlimited
	// ReadSelection loads the files named in a photo prompt. Defaults to
	// photo.ReadSelection.
	ReadSelection func(paths []string) (photo.Selection, error)
	// PhotoHint is shown while a photo path is typed. Defaults to the hint for
	// photo.DefaultMaxBytes.
	PhotoHint string
}

// photoDecodedMsg reports a finished upload. The target carries the child ID,
// not its index, so a child removed meanwhile is detected.
type photoDecodedMsg struct {
	target form.PhotoTarget
	key    string
	name   string
	uri    string
	empty  bool
	err    error
}

type removedChild struct {
	index int
	rec   model.ChildRecord
}

// Model is the Bubble Tea model. The form itself lives behind a pointer and
// is only touched from Update.
type Model struct {
	ctx  context.Context
	form *form.Form
	opts Options
	keys keyMap
	help help.Model

	cursor int

	// Inline edit
	ti      textinput.Model // shared text input for every editable row
	editing bool
	edit    control
	editErr string

	errs      map[string]string // inline messages keyed by control.key()
	status    string
	statusErr bool
	pending   int // uploads still decoding

	// Undo support (single-level)
	undo *removedChild

	submitted bool
	width     int
}

func New(ctx context.Context, f *form.Form, opts Options) Model {
	if opts.ReadSelection == nil {
		opts.ReadSelection = photo.ReadSelection
	}
	if opts.PhotoHint == "" {
		opts.PhotoHint = photo.Options{MaxBytes: photo.DefaultMaxBytes}.Hint()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{
		ctx:   ctx,
		form:  f,
		opts:  opts,
		keys:  defaultKeys(),
		help:  themedHelp(),
		ti:    ti,
		errs:  map[string]string{},
		width: 80,
	}
}

func themedHelp() help.Model {
	h := help.New()
	st := ui.Current().Help
	h.Styles.ShortDesc = st
	h.Styles.ShortSeparator = st
	h.Styles.FullDesc = st
	h.Styles.FullSeparator = st
	h.Styles.Ellipsis = st
	return h
}

// Submitted reports whether a submission went through before quitting.
func (m Model) Submitted() bool { return m.submitted }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.ti.Width = max(10, msg.Width-24)
		return m, nil
	case photoDecodedMsg:
		return m.applyPhoto(msg), nil
	}

	if m.editing {
		return m.updateEditing(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	controls := buildControls(m.form)
	m.cursor = clamp(m.cursor, len(controls))
	current := controls[m.cursor]

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(km, m.keys.Up):
		m.cursor = clamp(m.cursor-1, len(controls))
	case key.Matches(km, m.keys.Down):
		m.cursor = clamp(m.cursor+1, len(controls))
	case key.Matches(km, m.keys.Toggle):
		if current.kind == ctrlStatus {
			m = m.toggleStatus()
		}
	case key.Matches(km, m.keys.AddChild):
		m = m.addChild()
	case key.Matches(km, m.keys.Remove):
		if current.section == form.SectionChild {
			m = m.removeChild(current.childID)
		}
	case key.Matches(km, m.keys.Undo):
		m = m.undoRemove()
	case key.Matches(km, m.keys.Photo):
		if current.kind == ctrlPhoto {
			if err := m.form.ResetPhoto(current.photoTarget()); err != nil {
				m = m.fail(err.Error())
			} else {
				delete(m.errs, current.key())
				m = m.info("photo reset")
			}
		}
	case key.Matches(km, m.keys.Submit):
		m = m.submit()
	case key.Matches(km, m.keys.Reset):
		m = m.reset()
	case key.Matches(km, m.keys.Activate):
		return m.activate(current)
	}
	return m, nil
}

func (m Model) activate(c control) (tea.Model, tea.Cmd) {
	switch c.kind {
	case ctrlStatus:
		return m.toggleStatus(), nil
	case ctrlAddChild:
		return m.addChild(), nil
	case ctrlRemoveChild:
		return m.removeChild(c.childID), nil
	case ctrlSubmit:
		return m.submit(), nil
	case ctrlReset:
		return m.reset(), nil
	}
	if !c.editable() {
		return m, nil
	}

	m.editing = true
	m.edit = c
	m.editErr = ""
	if c.kind == ctrlPhoto {
		m.ti.SetValue("")
		m.ti.Placeholder = "path/to/photo.png (PNG or JPEG)"
	} else {
		m.ti.SetValue(value(m.form, c))
		m.ti.CursorEnd()
		m.ti.Placeholder = c.label
		if c.kind == ctrlDate {
			m.ti.Placeholder = "MM-DD-YYYY"
		}
	}
	return m, m.ti.Focus()
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			return m.commit()
		case "esc":
			return m.stopEditing(), nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) commit() (tea.Model, tea.Cmd) {
	c := m.edit
	raw := m.ti.Value()

	if c.kind == ctrlPhoto {
		m = m.stopEditing()
		m.pending++
		m = m.info("decoding photo...")
		return m, decodePhoto(m.form, c, strings.Split(raw, ","), m.opts.ReadSelection)
	}

	if err := apply(m.form, c, raw); err != nil {
		var fe *form.FieldError
		if errors.As(err, &fe) {
			m.editErr = fe.Message
		} else {
			m.editErr = err.Error()
		}
		return m, nil
	}
	delete(m.errs, c.key())
	return m.stopEditing(), nil
}

func (m Model) stopEditing() Model {
	m.editing = false
	m.editErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

// decodePhoto reads and decodes off the event loop; only the result message
// touches the form.
func decodePhoto(f *form.Form, c control, paths []string, read func([]string) (photo.Selection, error)) tea.Cmd {
	target, k := c.photoTarget(), c.key()
	return func() tea.Msg {
		sel, err := read(paths)
		if err != nil {
			return photoDecodedMsg{target: target, key: k, err: err}
		}
		file, ok := sel.First()
		if !ok {
			return photoDecodedMsg{target: target, key: k, empty: true}
		}
		uri, err := f.DecodePhoto(file.Data)
		if err != nil {
			err = fmt.Errorf("%s: %w", file.Name, err)
		}
		return photoDecodedMsg{target: target, key: k, name: file.Name, uri: uri, err: err}
	}
}

func (m Model) applyPhoto(msg photoDecodedMsg) Model {
	m.pending = max(0, m.pending-1)
	switch {
	case msg.empty:
		return m.info("no file selected")
	case msg.err != nil:
		slog.Warn("photo upload failed", "target", msg.key, "error", msg.err)
		m.errs[msg.key] = msg.err.Error()
		return m.fail("photo rejected")
	}
	if err := m.form.ApplyPhoto(msg.target, msg.uri); err != nil {
		if errors.Is(err, form.ErrUnknownRecord) {
			slog.Info("dropping photo for removed child", "child", msg.target.ChildID)
			return m.info("child was removed before its photo finished")
		}
		return m.fail(err.Error())
	}
	delete(m.errs, msg.key)
	return m.info("photo updated: " + msg.name)
}

func (m Model) toggleStatus() Model {
	next := model.Married
	if m.form.SpouseVisible() {
		next = model.Unmarried
	}
	if err := m.form.Primary().SetMaritalStatus(next); err != nil {
		return m.fail(err.Error())
	}
	delete(m.errs, "primary."+string(form.FieldMaritalStatus))
	return m
}

func (m Model) addChild() Model {
	if m.opts.MaxChildren > 0 && m.form.Children().Len() >= m.opts.MaxChildren {
		return m.fail(fmt.Sprintf("at most %d children", m.opts.MaxChildren))
	}
	m.form.Children().Add()
	return m.info(fmt.Sprintf("child %d added", m.form.Children().Len()))
}

func (m Model) removeChild(id string) Model {
	i := m.form.Children().IndexOf(id)
	rec, err := m.form.Children().At(i)
	if err != nil {
		return m.fail(err.Error())
	}
	if err := m.form.Children().RemoveAt(i); err != nil {
		return m.fail(err.Error())
	}
	m.undo = &removedChild{index: i, rec: rec}
	for k := range m.errs {
		if strings.HasPrefix(k, "child."+id+".") {
			delete(m.errs, k)
		}
	}
	m.cursor = clamp(m.cursor, len(buildControls(m.form)))
	return m.info(fmt.Sprintf("child %d removed (u to undo)", i+1))
}

func (m Model) undoRemove() Model {
	if m.undo == nil {
		return m
	}
	if err := m.form.Children().InsertAt(m.undo.index, m.undo.rec); err != nil {
		return m.fail(err.Error())
	}
	m.undo = nil
	return m.info("child restored")
}

func (m Model) submit() Model {
	err := m.form.Submit(m.ctx)
	for k := range m.errs {
		if strings.HasPrefix(k, "primary.") {
			delete(m.errs, k)
		}
	}
	switch {
	case errors.Is(err, form.ErrInvalid):
		for field, msg := range m.form.Validate().Messages() {
			m.errs["primary."+field] = msg
		}
		return m.fail("fix the highlighted fields")
	case err != nil:
		return m.fail(err.Error())
	}
	m.submitted = true
	return m.info("changes saved")
}

func (m Model) reset() Model {
	m.form.Reset()
	for k := range m.errs {
		if strings.HasPrefix(k, "primary.") {
			delete(m.errs, k)
		}
	}
	return m.info("form reset")
}

func (m Model) info(s string) Model {
	m.status, m.statusErr = s, false
	return m
}

func (m Model) fail(s string) Model {
	m.status, m.statusErr = s, true
	return m
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
