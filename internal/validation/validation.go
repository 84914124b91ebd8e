// Package validation wraps go-playground/validator so handlers get
// field/message pairs instead of a single opaque error.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Check validates a request DTO against its struct tags. A nil return means
// the request is valid.
func Check(req interface{}) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "request", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be %s or greater", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be %s or less", field, fe.Param())
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL", field)
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}
