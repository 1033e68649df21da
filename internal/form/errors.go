package form

import (
	"errors"

	"github.com/idilsaglam/account/internal/photo"
)

// Kind classifies form errors for display and for callers deciding whether
// an error is user input or a programming mistake.
type Kind int

const (
	KindUnknown Kind = iota
	KindRequired
	KindFormat
	KindIndex
	KindDecode
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindFormat:
		return "format"
	case KindIndex:
		return "out-of-range"
	case KindDecode:
		return "unsupported-format"
	case KindValidation:
		return "unknown-field"
	default:
		return "unknown"
	}
}

var (
	ErrRequired        = errors.New("required")
	ErrFormat          = errors.New("invalid format")
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownRecord   = errors.New("unknown record")
	ErrInvalid         = errors.New("form is invalid")
	ErrNoSink          = errors.New("no submission sink configured")
)

// FieldError is a per-field problem shown next to the offending control.
type FieldError struct {
	Field   string
	Kind    Kind
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error { return e.Err }

// Is matches the kind sentinels so callers can use errors.Is(err, ErrRequired).
func (e *FieldError) Is(target error) bool {
	switch e.Kind {
	case KindRequired:
		return target == ErrRequired
	case KindFormat:
		return target == ErrFormat
	}
	return false
}

func formatError(field, msg string, err error) *FieldError {
	return &FieldError{Field: field, Kind: KindFormat, Message: msg, Err: err}
}

// KindOf classifies err. A joined validation error reports the kind of its
// first field error.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var fe *FieldError
	switch {
	case errors.Is(err, ErrIndexOutOfRange), errors.Is(err, ErrUnknownRecord):
		return KindIndex
	case errors.Is(err, photo.ErrUnsupportedFormat), errors.Is(err, photo.ErrTooLarge):
		return KindDecode
	case errors.Is(err, ErrUnknownField):
		return KindValidation
	case errors.As(err, &fe):
		return fe.Kind
	}
	return KindUnknown
}
