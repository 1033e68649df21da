// Package prompt fills the account form line by line on a plain terminal,
// for sessions where the full-screen editor is not wanted.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/account/internal/form"
	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
)

// Options tune the question flow.
type Options struct {
	MaxChildren   int // 0 = unlimited
	ReadSelection func(paths []string) (photo.Selection, error)
	PhotoHint     string // defaults to the hint for photo.DefaultMaxBytes
}

var statusOptions = []string{"Unmarried", "Married"}

type session struct {
	ctx  context.Context
	d    Driver
	f    *form.Form
	opts Options
}

// Run asks for every visible field, re-asks the ones that fail validation and
// submits on confirmation. It reports whether the form was submitted.
func Run(ctx context.Context, d Driver, f *form.Form, opts Options) (bool, error) {
	if opts.ReadSelection == nil {
		opts.ReadSelection = photo.ReadSelection
	}
	if opts.PhotoHint == "" {
		opts.PhotoHint = photo.Options{MaxBytes: photo.DefaultMaxBytes}.Hint()
	}
	s := &session{ctx: ctx, d: d, f: f, opts: opts}

	if err := s.person(f.Primary(), form.PrimaryPhoto()); err != nil {
		return false, err
	}
	if err := s.status(); err != nil {
		return false, err
	}
	if f.SpouseVisible() {
		if err := d.Info(ctx, "Spouse Details"); err != nil {
			return false, err
		}
		if err := s.person(f.Spouse(), form.SpousePhoto()); err != nil {
			return false, err
		}
	}
	if err := s.children(); err != nil {
		return false, err
	}

	for res := f.Validate(); !res.Valid(); res = f.Validate() {
		for _, fe := range res.Errors() {
			if err := d.Info(ctx, fe.Message); err != nil {
				return false, err
			}
			if err := s.primaryField(form.Field(fe.Field)); err != nil {
				return false, err
			}
		}
	}

	save, err := d.Confirm(ctx, ConfirmConfig{Message: "Save changes?", Default: true})
	if err != nil || !save {
		return false, err
	}
	if err := f.Submit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *session) person(fields *form.Fields, target form.PhotoTarget) error {
	for _, key := range []form.Field{form.FieldName, form.FieldEmail, form.FieldBirthDate} {
		if err := s.text(fields, key); err != nil {
			return err
		}
	}
	return s.photo(target)
}

func (s *session) primaryField(key form.Field) error {
	if key == form.FieldMaritalStatus {
		return s.status()
	}
	return s.text(s.f.Primary(), key)
}

func (s *session) text(fields *form.Fields, key form.Field) error {
	current, err := fields.Get(key)
	if err != nil {
		return err
	}
	cfg := InputConfig{Message: labels[key], Default: current}
	if key == form.FieldBirthDate {
		cfg.Help = "MM-DD-YYYY, blank for none"
		cfg.Validator = checkDate
	}
	raw, err := s.d.Input(s.ctx, cfg)
	if err != nil {
		return err
	}
	return fields.Set(key, raw)
}

func (s *session) status() error {
	def := 0
	if s.f.SpouseVisible() {
		def = 1
	}
	i, err := s.d.Select(s.ctx, SelectConfig{Message: "Marital Status", Options: statusOptions, DefaultIndex: def})
	if err != nil {
		return err
	}
	next := model.Unmarried
	if i == 1 {
		next = model.Married
	}
	return s.f.Primary().SetMaritalStatus(next)
}

// photo asks for a file path; blank keeps the current photo. A rejected file
// is reported and the current photo is kept.
func (s *session) photo(target form.PhotoTarget) error {
	raw, err := s.d.Input(s.ctx, InputConfig{
		Message: "Photo",
		Help:    s.opts.PhotoHint + " Blank keeps the current photo.",
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	sel, err := s.opts.ReadSelection(strings.Split(raw, ","))
	if err == nil {
		_, err = s.f.UploadPhoto(target, sel)
	}
	if err != nil {
		return s.d.Info(s.ctx, "photo rejected: "+err.Error())
	}
	return nil
}

func (s *session) children() error {
	kids := s.f.Children()
	for i, rec := range kids.Records() {
		keep, err := s.d.Confirm(s.ctx, ConfirmConfig{
			Message: fmt.Sprintf("Keep child %d (%s)?", i+1, displayName(rec.Name)),
			Default: true,
		})
		if err != nil {
			return err
		}
		if !keep {
			if err := kids.Remove(rec.ID); err != nil {
				return err
			}
		}
	}

	for s.opts.MaxChildren <= 0 || kids.Len() < s.opts.MaxChildren {
		add, err := s.d.Confirm(s.ctx, ConfirmConfig{Message: "Add a child?"})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
		rec := kids.Add()
		if err := s.d.Info(s.ctx, fmt.Sprintf("Child %d", kids.Len())); err != nil {
			return err
		}
		if err := s.child(rec.ID); err != nil {
			return err
		}
	}
	return s.d.Info(s.ctx, fmt.Sprintf("at most %d children", s.opts.MaxChildren))
}

func (s *session) child(id string) error {
	for _, field := range []form.ChildField{form.ChildName, form.ChildSchoolName, form.ChildDateOfBirth, form.ChildEmail} {
		cfg := InputConfig{Message: childLabels[field]}
		if field == form.ChildDateOfBirth {
			cfg.Help = "MM-DD-YYYY, blank for none"
			cfg.Validator = checkDate
		}
		raw, err := s.d.Input(s.ctx, cfg)
		if err != nil {
			return err
		}
		if err := s.f.Children().Set(id, field, raw); err != nil {
			return err
		}
	}
	return s.photo(form.ChildPhotoTarget(id))
}

var labels = map[form.Field]string{
	form.FieldName:      "Name",
	form.FieldEmail:     "Email",
	form.FieldBirthDate: "Birth Date",
}

var childLabels = map[form.ChildField]string{
	form.ChildName:        "Child Name",
	form.ChildSchoolName:  "School Name",
	form.ChildDateOfBirth: "Birth Date",
	form.ChildEmail:       "Email",
}

func checkDate(s string) error {
	_, err := model.ParseDate(s)
	return err
}

func displayName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
