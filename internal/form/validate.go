package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/account/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	string(FieldName):          "Please Enter Name",
	string(FieldEmail):         "Please Enter Valid Email",
	string(FieldMaritalStatus): "Please Select Marital Status",
}

// Result holds the first failing rule of every invalid field, in schema
// order.
type Result struct {
	errs []*FieldError
}

func (r Result) Valid() bool { return len(r.errs) == 0 }

func (r Result) Errors() []*FieldError {
	out := make([]*FieldError, len(r.errs))
	copy(out, r.errs)
	return out
}

// For returns the error for field, or nil.
func (r Result) For(field Field) *FieldError {
	for _, e := range r.errs {
		if e.Field == string(field) {
			return e
		}
	}
	return nil
}

// Messages returns the inline messages keyed by field name.
func (r Result) Messages() map[string]string {
	if r.Valid() {
		return nil
	}
	out := make(map[string]string, len(r.errs))
	for _, e := range r.errs {
		out[e.Field] = e.Message
	}
	return out
}

// Err wraps ErrInvalid and every field error, or returns nil.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.errs))
	for i, e := range r.errs {
		errs[i] = e
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Validate checks the primary person fields: name and email are required,
// email must look like an address and the marital status must be set.
// Spouse and children are not validated.
func Validate(state model.FormState) Result {
	err := validate.Struct(state)
	if err == nil {
		return Result{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{errs: []*FieldError{{Kind: KindValidation, Message: err.Error(), Err: err}}}
	}
	out := make([]*FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError(fe))
	}
	return Result{errs: out}
}

func fieldError(fe validator.FieldError) *FieldError {
	kind, sentinel := KindFormat, ErrFormat
	if fe.Tag() == "required" {
		kind, sentinel = KindRequired, ErrRequired
	}
	msg, ok := fieldMessages[fe.Field()]
	if !ok {
		msg = fmt.Sprintf("failed %q rule", fe.Tag())
	}
	return &FieldError{
		Field:   fe.Field(),
		Kind:    kind,
		Message: msg,
		Err:     fmt.Errorf("%w: %s", sentinel, fe.Tag()),
	}
}
