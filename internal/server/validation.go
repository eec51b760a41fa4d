package server

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validationError converts the first validator failure into *ErrValidation.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &ErrValidation{Field: "request", Message: "invalid request"}
	}

	ve := validationErrors[0]
	return &ErrValidation{Field: ve.Field(), Message: describeTag(ve)}
}

func describeTag(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		return ve.Tag()
	}
}
