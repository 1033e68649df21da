package tui

import (
	"github.com/idilsaglam/account/internal/form"
	"github.com/idilsaglam/account/internal/model"
)

type controlKind int

const (
	ctrlPhoto controlKind = iota
	ctrlText
	ctrlDate
	ctrlStatus
	ctrlAddChild
	ctrlRemoveChild
	ctrlSubmit
	ctrlReset
)

// control is one focusable row. Children are referenced by ID, so the list
// can be rebuilt after every update without losing track of a record.
type control struct {
	kind    controlKind
	section form.Section
	childID string
	field   string
	label   string
}

// key identifies the control in the error map.
func (c control) key() string {
	switch c.section {
	case form.SectionSpouse:
		return "spouse." + c.field
	case form.SectionChild:
		return "child." + c.childID + "." + c.field
	default:
		return "primary." + c.field
	}
}

func (c control) photoTarget() form.PhotoTarget {
	return form.PhotoTarget{Section: c.section, ChildID: c.childID}
}

func (c control) editable() bool {
	return c.kind == ctrlText || c.kind == ctrlDate || c.kind == ctrlPhoto
}

func personControls(section form.Section, withStatus bool) []control {
	cs := []control{
		{kind: ctrlPhoto, section: section, field: string(form.FieldPhoto), label: "Photo"},
		{kind: ctrlText, section: section, field: string(form.FieldName), label: "Name"},
		{kind: ctrlText, section: section, field: string(form.FieldEmail), label: "Email"},
		{kind: ctrlDate, section: section, field: string(form.FieldBirthDate), label: "Birth Date"},
	}
	if withStatus {
		cs = append(cs, control{kind: ctrlStatus, section: section, field: string(form.FieldMaritalStatus), label: "Marital Status"})
	}
	return cs
}

func childControls(id string) []control {
	return []control{
		{kind: ctrlRemoveChild, section: form.SectionChild, childID: id, label: "Remove Child"},
		{kind: ctrlPhoto, section: form.SectionChild, childID: id, field: string(form.ChildPhoto), label: "Photo"},
		{kind: ctrlText, section: form.SectionChild, childID: id, field: string(form.ChildName), label: "Name"},
		{kind: ctrlText, section: form.SectionChild, childID: id, field: string(form.ChildSchoolName), label: "School Name"},
		{kind: ctrlDate, section: form.SectionChild, childID: id, field: string(form.ChildDateOfBirth), label: "Birth Date"},
		{kind: ctrlText, section: form.SectionChild, childID: id, field: string(form.ChildEmail), label: "Email"},
	}
}

// buildControls lays out the form in display order for its current state.
func buildControls(f *form.Form) []control {
	cs := personControls(form.SectionPrimary, true)
	if f.SpouseVisible() {
		cs = append(cs, personControls(form.SectionSpouse, false)...)
	}
	cs = append(cs, control{kind: ctrlAddChild, label: "Add Child"})
	for _, rec := range f.Children().Records() {
		cs = append(cs, childControls(rec.ID)...)
	}
	return append(cs,
		control{kind: ctrlSubmit, label: "Save Changes"},
		control{kind: ctrlReset, label: "Reset"},
	)
}

// value reads the current text of c from the form.
func value(f *form.Form, c control) string {
	switch c.section {
	case form.SectionPrimary:
		v, _ := f.Primary().Get(form.Field(c.field))
		return v
	case form.SectionSpouse:
		v, _ := f.Spouse().Get(form.Field(c.field))
		return v
	}
	rec, ok := f.Children().Get(c.childID)
	if !ok {
		return ""
	}
	switch form.ChildField(c.field) {
	case form.ChildName:
		return rec.Name
	case form.ChildSchoolName:
		return rec.SchoolName
	case form.ChildEmail:
		return rec.Email
	case form.ChildDateOfBirth:
		return model.FormatDate(rec.DateOfBirth)
	default:
		return rec.PhotoRef
	}
}

// apply writes raw text typed into c back to the form.
func apply(f *form.Form, c control, raw string) error {
	switch c.section {
	case form.SectionPrimary:
		return f.Primary().Set(form.Field(c.field), raw)
	case form.SectionSpouse:
		return f.Spouse().Set(form.Field(c.field), raw)
	default:
		return f.Children().Set(c.childID, form.ChildField(c.field), raw)
	}
}
