package shared

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidator converts go-playground validation errors into the local
// ValidationError shape so callers never branch on the library type.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
