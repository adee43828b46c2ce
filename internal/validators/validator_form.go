package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormValidator validates structs tagged for go-playground/validator. The
// field name reported in errors comes from the `form` tag and the message
// from the `msg` tag:
//
//	type RegistrationForm struct {
//	    Name string `form:"name" validate:"required" msg:"Your name cannot be empty"`
//	}
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formName)
	return &FormValidator{validate: v}
}

func formName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Validate implements [Validator]. obj must be a struct or a pointer to one.
// When fields are given, only the fields with those form names are checked.
// A failed validation returns [FieldErrors].
func (v *FormValidator) Validate(_ context.Context, obj any, fields ...string) error {
	t := reflect.TypeOf(obj)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	var err error
	if len(fields) == 0 {
		err = v.validate.Struct(obj)
	} else {
		names, lookupErr := structFieldNames(t, fields)
		if lookupErr != nil {
			return lookupErr
		}
		err = v.validate.StructPartial(obj, names...)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid validation error: %w", err)
	}

	out := make(FieldErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, FieldError{Field: fe.Field(), Message: message(t, fe)})
	}
	return out
}

// structFieldNames maps form names to the struct field names StructPartial
// expects.
func structFieldNames(t reflect.Type, fields []string) ([]string, error) {
	byForm := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		byForm[formName(f)] = f.Name
	}

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		name, ok := byForm[field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		names = append(names, name)
	}
	return names, nil
}

func message(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", fe.Field())
	}
}
