package validator

import (
	"log"
	"regexp"
	"strings"
	"unicode"

	"aula_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var personNameRe = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ\s]+$`)

// registerCustomRules installs all custom validation tags. Registration
// failures abort startup.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("strong-password", validateStrongPassword)
	mustRegister("person-name", validatePersonName)
	mustRegister("notification-type", validateNotificationType)
	mustRegister("task-status", validateTaskStatus)
	mustRegister("response-action", validateResponseAction)
}

// validateStrongPassword enforces the registration password policy:
// at least 8 chars, one upper, one lower, one digit, one special character.
func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}

func validatePersonName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	if len(name) < 2 || len(name) > 50 {
		return false
	}
	return personNameRe.MatchString(name)
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' owns the empty case
	}
	return models.NotificationType(value).Valid()
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.TaskStatus(value).Valid()
}

func validateResponseAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ResponseAction(value).Valid()
}
