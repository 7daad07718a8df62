// Package validation checks request input and reports failures as a
// 400 INVALID_INPUT *errors.AppError whose details list every failed field.
//
// Struct checks read go-playground/validator tags and name fields by their
// json keys:
//
//	type PostRequest struct {
//	    Name string `json:"name" validate:"required,min=1"`
//	}
//	err := validation.Validate(&req)
//
// Ad hoc checks chain on a Validator.
package validation
