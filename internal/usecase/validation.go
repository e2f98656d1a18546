package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/macrotrack/backend/internal/domain"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so messages match request bodies
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateStruct checks validate tags and wraps failures in ErrInvalidRequest
func validateStruct(s any) error {
	msg, err := validationMessage(s)
	if err != nil {
		return err
	}
	if msg != "" {
		return domain.Invalidf("%s", msg)
	}
	return nil
}

// validationMessage returns the joined field messages, empty when s is valid
func validationMessage(s any) (string, error) {
	err := validate.Struct(s)
	if err == nil {
		return "", nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", fmt.Errorf("validating %T: %w", s, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; "), nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	default:
		return field + " is invalid"
	}
}

// validateDay checks the user id and calendar day used by per-day queries
func validateDay(userID uint, date string) error {
	if userID == 0 {
		return domain.Invalidf("userId is required")
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return domain.Invalidf("date must be a date in YYYY-MM-DD format")
	}
	return nil
}
