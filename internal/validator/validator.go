package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a field -> message map for failed validation.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator with our custom rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report field names as they appear in the JSON payload, not as Go
	// struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{validate: v}
}

// Validate checks the struct and returns *ValidationError on failure.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fieldErr := range validationErrors {
		customErrors[fieldErr.Field()] = messageForTag(fieldErr)
	}

	return &ValidationError{Errors: customErrors}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "strong-password":
		return "must be at least 8 characters with upper and lower case letters, a digit and a special character"
	case "person-name":
		return "must be 2-50 characters, letters and spaces only"
	case "notification-type":
		return "must be one of: task, invitation, message, other"
	case "task-status":
		return "must be one of: todo, in_progress, done"
	case "response-action":
		return "must be one of: accept, reject"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
