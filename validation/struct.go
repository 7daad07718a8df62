package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var engine = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
})

// jsonName reports fields by their json key, falling back to the Go name
// for untagged fields.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return name
}

// Validate checks s against its `validate` struct tags and returns an
// *errors.AppError listing every failure, or nil.
func Validate(s any) error {
	fields, err := Fields(s)
	if err != nil {
		return FieldErrors{{Field: "(root)", Message: err.Error()}}.AppError()
	}
	if len(fields) == 0 {
		return nil
	}
	return fields.AppError()
}

// Fields checks s and returns its failures unwrapped. The error is non-nil
// only when s cannot be validated at all, e.g. it is not a struct.
func Fields(s any) (FieldErrors, error) {
	err := engine().Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil, err
	}
	out := make(FieldErrors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: path(fe), Message: message(fe)}
	}
	return out, nil
}

// Elements checks every element of a slice, array or map against its
// `validate` struct tags. Paths keep the element index or key, as in
// "[0].name". Any other kind is reported as an error.
func Elements(v any) (FieldErrors, error) {
	switch reflect.Indirect(reflect.ValueOf(v)).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
	default:
		return nil, fmt.Errorf("validation: %T is not a collection", v)
	}
	err := engine().Var(v, "dive")
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil, err
	}
	out := make(FieldErrors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: fe.Namespace(), Message: message(fe)}
	}
	return out, nil
}

// path strips the root type from the namespace: "Post.author.name" becomes
// "author.name".
func path(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

var messages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m
	}
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "min", "gte":
		return "must be at least " + fe.Param() + unit
	case "max", "lte":
		return "must be at most " + fe.Param() + unit
	case "len":
		return "must be exactly " + fe.Param() + unit
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "failed " + fe.Tag()
}
