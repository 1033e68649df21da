package form

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/idilsaglam/account/internal/model"
)

// Field names a top-level form field.
type Field string

const (
	FieldName          Field = "name"
	FieldEmail         Field = "email"
	FieldMaritalStatus Field = "maritalStatus"
	FieldBirthDate     Field = "birthDate"
	FieldPhoto         Field = "photoRef"
)

var (
	primarySchema = []Field{FieldName, FieldEmail, FieldMaritalStatus, FieldBirthDate, FieldPhoto}
	spouseSchema  = []Field{FieldName, FieldEmail, FieldBirthDate, FieldPhoto}
)

// Fields is the value store for one person: the primary account holder or
// the spouse. Which keys it accepts is fixed by its schema.
type Fields struct {
	schema      []Field
	placeholder string
	values      model.FormState
}

func newFields(schema []Field, placeholder string) *Fields {
	f := &Fields{schema: schema, placeholder: placeholder}
	f.Reset()
	return f
}

// Schema lists the accepted keys in display order.
func (f *Fields) Schema() []Field { return slices.Clone(f.schema) }

// Accepts reports whether key belongs to this store's schema.
func (f *Fields) Accepts(key Field) bool { return slices.Contains(f.schema, key) }

// Reset restores the defaults: empty text, no date, the placeholder photo
// and, for the primary store, an unmarried status.
func (f *Fields) Reset() {
	f.values = model.FormState{PhotoRef: f.placeholder}
	if f.Accepts(FieldMaritalStatus) {
		f.values.MaritalStatus = model.Unmarried
	}
}

// Values returns a snapshot; changing it does not affect the store.
func (f *Fields) Values() model.FormState {
	v := f.values
	v.BirthDate = cloneTime(v.BirthDate)
	return v
}

// Spouse returns the snapshot in spouse shape.
func (f *Fields) Spouse() model.Spouse {
	v := f.Values()
	return model.Spouse{Name: v.Name, Email: v.Email, BirthDate: v.BirthDate, PhotoRef: v.PhotoRef}
}

// Load replaces every accepted field with the values from state.
func (f *Fields) Load(state model.FormState) {
	f.Reset()
	f.values.Name = state.Name
	f.values.Email = state.Email
	f.values.BirthDate = cloneTime(state.BirthDate)
	if state.PhotoRef != "" {
		f.values.PhotoRef = state.PhotoRef
	}
	if f.Accepts(FieldMaritalStatus) && state.MaritalStatus != "" {
		f.values.MaritalStatus = state.MaritalStatus
	}
}

func (f *Fields) SetName(v string)          { f.values.Name = v }
func (f *Fields) SetEmail(v string)         { f.values.Email = v }
func (f *Fields) SetBirthDate(t *time.Time) { f.values.BirthDate = cloneTime(t) }

// SetPhotoRef stores a path or data URI; blank restores the placeholder.
func (f *Fields) SetPhotoRef(ref string) {
	if ref == "" {
		ref = f.placeholder
	}
	f.values.PhotoRef = ref
}

func (f *Fields) SetMaritalStatus(s model.MaritalStatus) error {
	if !f.Accepts(FieldMaritalStatus) {
		return fmt.Errorf("%w: %q", ErrUnknownField, FieldMaritalStatus)
	}
	if !s.Valid() {
		return formatError(string(FieldMaritalStatus), "Please Select Marital Status", fmt.Errorf("%w: %q", ErrFormat, s))
	}
	f.values.MaritalStatus = s
	return nil
}

// Set applies a raw value typed into a control. Text is sanitized, dates
// and the marital status are parsed.
func (f *Fields) Set(key Field, raw string) error {
	if !f.Accepts(key) {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	switch key {
	case FieldName:
		f.SetName(cleanText(raw))
	case FieldEmail:
		f.SetEmail(cleanText(raw))
	case FieldMaritalStatus:
		return f.SetMaritalStatus(model.MaritalStatus(strings.ToLower(strings.TrimSpace(raw))))
	case FieldBirthDate:
		t, err := model.ParseDate(raw)
		if err != nil {
			return formatError(string(key), err.Error(), err)
		}
		f.SetBirthDate(t)
	case FieldPhoto:
		f.SetPhotoRef(strings.TrimSpace(raw))
	}
	return nil
}

// Get renders one field as text for a control.
func (f *Fields) Get(key Field) (string, error) {
	if !f.Accepts(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	switch key {
	case FieldName:
		return f.values.Name, nil
	case FieldEmail:
		return f.values.Email, nil
	case FieldMaritalStatus:
		return string(f.values.MaritalStatus), nil
	case FieldBirthDate:
		return model.FormatDate(f.values.BirthDate), nil
	default:
		return f.values.PhotoRef, nil
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
