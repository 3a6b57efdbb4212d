// Package validation checks request bodies before they reach the services.
// Every violation of a body is reported, not only the first one.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"marketplace/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// Normalizer is implemented by requests that clean their fields before being validated.
type Normalizer interface {
	Normalize()
}

// Messenger is implemented by requests with custom messages, keyed by "field.tag".
type Messenger interface {
	ValidationMessages() map[string]string
}

// Checker is implemented by requests with rules spanning several fields.
type Checker interface {
	Check() []string
}

// Validator validates request structs.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct normalizes and validates req. Violations are returned as one
// apperror Validation error listing every message.
func (v *Validator) Struct(req interface{}) error {
	if n, ok := req.(Normalizer); ok {
		n.Normalize()
	}

	var details []string
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperror.NewBadRequest("Invalid request body", err)
		}
		var messages map[string]string
		if m, ok := req.(Messenger); ok {
			messages = m.ValidationMessages()
		}
		for _, fe := range fieldErrs {
			if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
				details = append(details, msg)
				continue
			}
			details = append(details, defaultMessage(fe))
		}
	}

	if c, ok := req.(Checker); ok {
		details = append(details, c.Check()...)
	}

	if len(details) > 0 {
		return apperror.NewValidation(details)
	}
	return nil
}

func defaultMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid ID", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be %s %s characters", field, bound, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s must contain %s %s items", field, bound, fe.Param())
		default:
			return fmt.Sprintf("%s must be %s %s", field, bound, fe.Param())
		}
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
