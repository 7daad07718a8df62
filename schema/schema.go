package schema

import (
	"fmt"
	"strings"

	"github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/hook"
)

// Schema validates a parsed response body.
type Schema interface {
	Validate(data any) error
}

var _ hook.Validator = Schema(nil)

// Func adapts a plain function to Schema.
type Func func(data any) error

// Validate calls f(data).
func (f Func) Validate(data any) error { return f(data) }

// Issue is a single validation failure.
type Issue struct {
	// Path locates the offending value, dotted from the document root.
	// "(root)" designates the document itself.
	Path string `json:"path"`
	// Message describes the failure.
	Message string `json:"message"`
}

// Error is returned when data does not match a schema.
type Error struct {
	Issues []Issue
}

// Error joins every issue as "path: message".
func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Path + ": " + is.Message
	}
	return fmt.Sprintf("schema: validation failed: %s", strings.Join(parts, "; "))
}

// AppError converts e to a validation AppError with the issues attached
// under Details["fields"].
func (e *Error) AppError() *errors.AppError {
	return errors.Validation(e.Error()).WithDetail("fields", e.Issues)
}

func issue(path, message string) *Error {
	return &Error{Issues: []Issue{{Path: path, Message: message}}}
}
