package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "usercontacts/internal/errors"
)

// fieldMessages holds the user-facing text for field/tag pairs. Keys are struct
// field names as reported by the validator.
var fieldMessages = map[string]map[string]string{
	"Email": {
		"required": "E-mail cannot be null",
		"email":    "Invalid e-mail!",
	},
	"Phone": {
		"required": "Phone number must contain only numbers.",
		"numeric":  "Phone number must contain only numbers.",
		"min":      "Phone number must contain between 7 and 15 chars.",
		"max":      "Phone number must contain between 7 and 15 chars.",
	},
	"Username": {
		"required": "Username cannot be empty",
		"max":      "Username must be at most 255 chars.",
	},
	"Age": {
		"min": "Age must be between 0 and 150.",
		"max": "Age must be between 0 and 150.",
	},
}

// validateStruct runs struct-tag validation and converts failures into a ValidationError.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperrors.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return out
}

func messageFor(field, tag string) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s failed on the '%s' rule", field, tag)
}

func uniqueViolation(field string) error {
	return apperrors.NewValidationError(field, field+" must be unique")
}
