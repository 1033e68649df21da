package form

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/account/internal/model"
)

// ChildField names a field of a child record.
type ChildField string

const (
	ChildName        ChildField = "name"
	ChildSchoolName  ChildField = "schoolName"
	ChildDateOfBirth ChildField = "dateOfBirth"
	ChildEmail       ChildField = "email"
	ChildPhoto       ChildField = "photoRef"
)

// ChildSchema lists the child fields in display order.
var ChildSchema = []ChildField{ChildName, ChildSchoolName, ChildDateOfBirth, ChildEmail, ChildPhoto}

// PhotoDecoder turns uploaded bytes into a displayable reference.
type PhotoDecoder interface {
	Decode(data []byte) (string, error)
}

// Children is the ordered collection of child records. Records are addressed
// by their stable ID; positional helpers resolve the index to an ID first.
//
// Every mutation swaps in a new slice and a new record pointer for the
// changed record only, so untouched records keep their identity and earlier
// snapshots never change.
type Children struct {
	records     []*model.ChildRecord
	placeholder string
	decoder     PhotoDecoder
	newID       func() string
}

func NewChildren(placeholder string, decoder PhotoDecoder) *Children {
	return &Children{
		placeholder: placeholder,
		decoder:     decoder,
		newID:       uuid.NewString,
	}
}

// Template is the record a new child starts from, without an ID.
func (c *Children) Template() model.ChildRecord {
	return model.ChildRecord{PhotoRef: c.placeholder}
}

func (c *Children) Len() int { return len(c.records) }

// Records returns a snapshot in display order.
func (c *Children) Records() []model.ChildRecord {
	out := make([]model.ChildRecord, len(c.records))
	for i, r := range c.records {
		out[i] = copyRecord(r)
	}
	return out
}

// Add appends a default record and returns it.
func (c *Children) Add() model.ChildRecord {
	rec := c.Template()
	rec.ID = c.newID()
	c.records = append(slices.Clip(c.records), &rec)
	return rec
}

// InsertAt puts rec back at index i, clamped to the current bounds. It is
// used to undo a removal; a blank ID gets a fresh one.
func (c *Children) InsertAt(i int, rec model.ChildRecord) error {
	if rec.ID == "" {
		rec.ID = c.newID()
	}
	if c.IndexOf(rec.ID) >= 0 {
		return fmt.Errorf("child %s already present", rec.ID)
	}
	i = max(0, min(i, len(c.records)))
	r := copyRecord(&rec)
	c.records = slices.Insert(slices.Clone(c.records), i, &r)
	return nil
}

// Load replaces the collection, e.g. from a draft. Records without an ID,
// or repeating one already seen, get a fresh one; records without a photo get
// the placeholder.
func (c *Children) Load(records []model.ChildRecord) {
	next := make([]*model.ChildRecord, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		r := copyRecord(&rec)
		if r.ID == "" || seen[r.ID] {
			r.ID = c.newID()
		}
		seen[r.ID] = true
		if r.PhotoRef == "" {
			r.PhotoRef = c.placeholder
		}
		next = append(next, &r)
	}
	c.records = next
}

// IndexOf returns the current position of id, or -1.
func (c *Children) IndexOf(id string) int {
	return slices.IndexFunc(c.records, func(r *model.ChildRecord) bool { return r.ID == id })
}

// Get returns a copy of the record with id.
func (c *Children) Get(id string) (model.ChildRecord, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return model.ChildRecord{}, false
	}
	return copyRecord(c.records[i]), true
}

// At returns a copy of the record at index i.
func (c *Children) At(i int) (model.ChildRecord, error) {
	if err := c.checkIndex(i); err != nil {
		return model.ChildRecord{}, err
	}
	return copyRecord(c.records[i]), nil
}

// RemoveAt drops the record at i; later records move down one position.
func (c *Children) RemoveAt(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.records = slices.Delete(slices.Clone(c.records), i, i+1)
	return nil
}

func (c *Children) Remove(id string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: child %s", ErrUnknownRecord, id)
	}
	return c.RemoveAt(i)
}

func (c *Children) SetFieldAt(i int, field ChildField, raw string) error {
	id, err := c.idAt(i)
	if err != nil {
		return err
	}
	return c.Set(id, field, raw)
}

// Set applies a raw control value to one field of the child with id.
func (c *Children) Set(id string, field ChildField, raw string) error {
	if !slices.Contains(ChildSchema, field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return c.update(id, func(r *model.ChildRecord) error {
		switch field {
		case ChildName:
			r.Name = cleanText(raw)
		case ChildSchoolName:
			r.SchoolName = cleanText(raw)
		case ChildEmail:
			r.Email = cleanText(raw)
		case ChildDateOfBirth:
			t, err := model.ParseDate(raw)
			if err != nil {
				return formatError(string(field), err.Error(), err)
			}
			r.DateOfBirth = t
		case ChildPhoto:
			r.PhotoRef = c.photoOrPlaceholder(strings.TrimSpace(raw))
		}
		return nil
	})
}

func (c *Children) SetDateOfBirth(id string, t *time.Time) error {
	return c.update(id, func(r *model.ChildRecord) error {
		r.DateOfBirth = cloneTime(t)
		return nil
	})
}

// SetPhoto stores an already decoded reference on the child with id.
func (c *Children) SetPhoto(id, ref string) error {
	return c.update(id, func(r *model.ChildRecord) error {
		r.PhotoRef = c.photoOrPlaceholder(ref)
		return nil
	})
}

// SetPhotoAt decodes raw image bytes and stores them on the child at i.
func (c *Children) SetPhotoAt(i int, raw []byte) error {
	id, err := c.idAt(i)
	if err != nil {
		return err
	}
	uri, err := c.decoder.Decode(raw)
	if err != nil {
		return fmt.Errorf("child %d photo: %w", i, err)
	}
	return c.SetPhoto(id, uri)
}

func (c *Children) ResetPhoto(id string) error {
	return c.SetPhoto(id, "")
}

func (c *Children) ResetPhotoAt(i int) error {
	id, err := c.idAt(i)
	if err != nil {
		return err
	}
	return c.ResetPhoto(id)
}

func (c *Children) update(id string, fn func(*model.ChildRecord) error) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: child %s", ErrUnknownRecord, id)
	}
	r := copyRecord(c.records[i])
	if err := fn(&r); err != nil {
		return err
	}
	next := slices.Clone(c.records)
	next[i] = &r
	c.records = next
	return nil
}

func (c *Children) idAt(i int) (string, error) {
	if err := c.checkIndex(i); err != nil {
		return "", err
	}
	return c.records[i].ID, nil
}

func (c *Children) checkIndex(i int) error {
	if i < 0 || i >= len(c.records) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(c.records), i)
	}
	return nil
}

func (c *Children) photoOrPlaceholder(ref string) string {
	if ref == "" {
		return c.placeholder
	}
	return ref
}

func copyRecord(r *model.ChildRecord) model.ChildRecord {
	out := *r
	out.DateOfBirth = cloneTime(r.DateOfBirth)
	return out
}
