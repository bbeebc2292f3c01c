package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GetErrorMsg renders the first binding violation as a human readable message.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " field is required"
	case "min":
		return fmt.Sprintf("%s field must be at least %s", field.Field(), field.Param())
	case "max":
		return fmt.Sprintf("%s field must be at most %s", field.Field(), field.Param())
	case "email":
		return field.Field() + " field must be a valid email"
	case "alphanum":
		return field.Field() + " field must contain only letters and numbers"
	}

	return field.Field() + " field is invalid"
}
