package schema

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/kbukum/fetchkit/validation"
)

// StructSchema validates data by decoding it into T and checking T's
// `validate` struct tags.
type StructSchema[T any] struct{}

// Struct returns a schema backed by T.
//
//	type Post struct {
//	    Name    string `json:"name" validate:"required,min=1"`
//	    Content string `json:"content"`
//	}
//	s := schema.Struct[Post]()
func Struct[T any]() StructSchema[T] {
	return StructSchema[T]{}
}

// Decode converts a parsed body into T. Type mismatches are reported as
// *Error with the offending field path.
func (StructSchema[T]) Decode(data any) (T, error) {
	var out T
	raw, err := json.Marshal(data)
	if err != nil {
		return out, issue("(root)", fmt.Sprintf("not encodable as JSON: %v", err))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			path := typeErr.Field
			if path == "" {
				path = "(root)"
			}
			return out, issue(path, fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
		}
		return out, issue("(root)", err.Error())
	}
	return out, nil
}

// Validate decodes data into T and validates its struct tags. When T is a
// slice, array or map, each element is validated.
func (s StructSchema[T]) Validate(data any) error {
	v, err := s.Decode(data)
	if err != nil {
		return err
	}

	var fields validation.FieldErrors
	switch kindOf(v) {
	case reflect.Struct:
		fields, err = validation.Fields(v)
	case reflect.Slice, reflect.Array, reflect.Map:
		fields, err = validation.Elements(v)
	default:
		return nil
	}
	if err != nil {
		return issue("(root)", err.Error())
	}
	if len(fields) == 0 {
		return nil
	}
	e := &Error{Issues: make([]Issue, len(fields))}
	for i, f := range fields {
		e.Issues[i] = Issue{Path: f.Field, Message: f.Message}
	}
	return e
}

func kindOf(v any) reflect.Kind {
	t := reflect.TypeOf(v)
	if t == nil {
		return reflect.Invalid
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind()
}
