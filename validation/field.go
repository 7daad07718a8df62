package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/fetchkit/errors"
)

// FieldError is one failed constraint. Field is a dotted json path below
// the validated value, e.g. "author.name".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the set of failures from one validation run.
type FieldErrors []FieldError

// Error joins the failures as "field: message; ...".
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

// AppError converts fe to a 400 INVALID_INPUT error carrying the failures
// under Details["fields"]. It returns nil for an empty set.
func (fe FieldErrors) AppError() *errors.AppError {
	if len(fe) == 0 {
		return nil
	}
	return errors.Validation(fe.Error()).WithDetail("fields", []FieldError(fe))
}

// Validator accumulates failures from programmatic checks:
//
//	err := validation.New().MaxLength("sub", sub, 128).Validate()
type Validator struct {
	failed FieldErrors
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Check records message against field unless ok holds.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.failed = append(v.failed, FieldError{Field: field, Message: message})
	}
	return v
}

// Required fails on blank values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength fails when value has more than n characters.
func (v *Validator) MaxLength(field, value string, n int) *Validator {
	return v.Check(utf8.RuneCountInString(value) <= n, field, fmt.Sprintf("must be at most %d characters", n))
}

// Errors returns the failures recorded so far.
func (v *Validator) Errors() FieldErrors {
	return v.failed
}

// Validate returns the recorded failures as an *errors.AppError, or nil.
func (v *Validator) Validate() error {
	if len(v.failed) == 0 {
		return nil
	}
	return v.failed.AppError()
}
