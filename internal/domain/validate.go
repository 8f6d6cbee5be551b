package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a record rejected at ingestion.
type ValidationError struct {
	Kind string
	ID   string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid wraps err as a ValidationError for the given record.
func Invalid(kind, id string, err error) error {
	return &ValidationError{Kind: kind, ID: id, Err: err}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Struct runs the validate tags of v and converts the first failing field
// into a ValidationError.
func Struct(kind, id string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return Invalid(kind, id, fmt.Errorf("field %s failed %q", fe.Field(), fe.Tag()))
	}
	return Invalid(kind, id, err)
}
