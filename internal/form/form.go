// Package form owns the state of the account settings form: the primary
// person fields, the conditional spouse section and the list of children.
// Renderers read snapshots and push user intents through the methods here;
// nothing else mutates the state.
package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
)

// Sink receives a validated submission.
type Sink interface {
	Submit(ctx context.Context, p model.Payload) error
}

type Option func(*Form)

func WithSink(s Sink) Option { return func(f *Form) { f.sink = s } }

func WithLogger(l *slog.Logger) Option { return func(f *Form) { f.logger = l } }

func WithPlaceholder(ref string) Option { return func(f *Form) { f.placeholder = ref } }

func WithDecoder(d PhotoDecoder) Option { return func(f *Form) { f.decoder = d } }

// Form is one form's lifetime of state. It is not safe for concurrent use;
// a single event loop owns it.
type Form struct {
	primary  *Fields
	spouse   *Fields
	children *Children

	sink        Sink
	logger      *slog.Logger
	decoder     PhotoDecoder
	placeholder string
}

func New(opts ...Option) *Form {
	f := &Form{
		logger:      slog.Default(),
		decoder:     photo.NewDecoder(photo.Options{MaxBytes: photo.DefaultMaxBytes}),
		placeholder: model.DefaultPhoto,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.primary = newFields(primarySchema, f.placeholder)
	f.spouse = newFields(spouseSchema, f.placeholder)
	f.children = NewChildren(f.placeholder, f.decoder)
	return f
}

func (f *Form) Primary() *Fields     { return f.primary }
func (f *Form) Spouse() *Fields      { return f.spouse }
func (f *Form) Children() *Children  { return f.children }
func (f *Form) Placeholder() string  { return f.placeholder }
func (f *Form) Logger() *slog.Logger { return f.logger }

// SpouseVisible applies IsSpouseSectionVisible to the current status.
func (f *Form) SpouseVisible() bool {
	return IsSpouseSectionVisible(f.primary.values.MaritalStatus)
}

// Validate checks the current primary fields.
func (f *Form) Validate() Result {
	return Validate(f.primary.Values())
}

// Load seeds the form from a payload, e.g. a draft file.
func (f *Form) Load(p model.Payload) {
	f.primary.Load(p.State())
	if p.Spouse != nil {
		f.spouse.Load(model.FormState{
			Name:      p.Spouse.Name,
			Email:     p.Spouse.Email,
			BirthDate: p.Spouse.BirthDate,
			PhotoRef:  p.Spouse.PhotoRef,
		})
	}
	f.children.Load(p.Children)
}

// Payload assembles what a sink receives. The spouse is only included while
// the spouse section is visible.
func (f *Form) Payload() model.Payload {
	v := f.primary.Values()
	p := model.Payload{
		Name:          v.Name,
		Email:         v.Email,
		MaritalStatus: v.MaritalStatus,
		BirthDate:     v.BirthDate,
		PhotoRef:      v.PhotoRef,
		Children:      f.children.Records(),
	}
	if f.SpouseVisible() {
		s := f.spouse.Spouse()
		p.Spouse = &s
	}
	return p
}

// Submit validates and, when valid, hands the payload to the sink. An invalid
// form returns an error wrapping ErrInvalid and each field error; the sink is
// not called.
func (f *Form) Submit(ctx context.Context) error {
	res := f.Validate()
	if !res.Valid() {
		f.logger.Info("submit rejected", "invalid_fields", len(res.errs))
		return res.Err()
	}
	if f.sink == nil {
		return ErrNoSink
	}
	p := f.Payload()
	if err := f.sink.Submit(ctx, p); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	f.logger.Info("form submitted", "children", len(p.Children), "spouse", p.Spouse != nil)
	return nil
}

// Reset restores the primary fields to their defaults. The spouse section
// and the children are kept, as with the page's reset button.
func (f *Form) Reset() {
	f.primary.Reset()
	f.logger.Debug("form reset", "children_kept", f.children.Len())
}

// Section says which photo a PhotoTarget addresses.
type Section int

const (
	SectionPrimary Section = iota
	SectionSpouse
	SectionChild
)

// PhotoTarget addresses one photo slot. Children are addressed by ID so a
// late decode never lands on whichever child now holds the old index.
type PhotoTarget struct {
	Section Section
	ChildID string
}

func PrimaryPhoto() PhotoTarget              { return PhotoTarget{Section: SectionPrimary} }
func SpousePhoto() PhotoTarget               { return PhotoTarget{Section: SectionSpouse} }
func ChildPhotoTarget(id string) PhotoTarget { return PhotoTarget{Section: SectionChild, ChildID: id} }

// DecodePhoto converts upload bytes to a reference without touching state,
// so it can run off the event loop.
func (f *Form) DecodePhoto(data []byte) (string, error) {
	return f.decoder.Decode(data)
}

// UploadPhoto decodes the first file of sel and stores it on t. An empty
// selection is a no-op and reports false.
func (f *Form) UploadPhoto(t PhotoTarget, sel photo.Selection) (bool, error) {
	file, ok := sel.First()
	if !ok {
		f.logger.Debug("empty photo selection ignored")
		return false, nil
	}
	uri, err := f.DecodePhoto(file.Data)
	if err != nil {
		return false, fmt.Errorf("%s: %w", file.Name, err)
	}
	if err := f.ApplyPhoto(t, uri); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyPhoto stores a decoded reference on t.
func (f *Form) ApplyPhoto(t PhotoTarget, ref string) error {
	switch t.Section {
	case SectionPrimary:
		f.primary.SetPhotoRef(ref)
	case SectionSpouse:
		f.spouse.SetPhotoRef(ref)
	case SectionChild:
		return f.children.SetPhoto(t.ChildID, ref)
	default:
		return fmt.Errorf("unknown photo section %d", t.Section)
	}
	return nil
}

// ResetPhoto puts the placeholder back on t.
func (f *Form) ResetPhoto(t PhotoTarget) error {
	return f.ApplyPhoto(t, "")
}
