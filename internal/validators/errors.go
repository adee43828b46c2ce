package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrInvalidForm     = errors.New("invalid form")
)

// FieldError is the failed rule of one form field.
type FieldError struct {
	// Field is the form name of the field.
	Field string
	// Message is the human readable text from the field's msg tag.
	Message string
}

// FieldErrors lists every failed field in declaration order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return ErrInvalidForm.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrInvalidForm) hold for FieldErrors.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrInvalidForm
}

// Messages returns the message of every failed field.
func (fe FieldErrors) Messages() []string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return msgs
}
