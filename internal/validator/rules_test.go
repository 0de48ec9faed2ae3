package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula_backend/internal/validator"
)

type passwordForm struct {
	Password string `json:"password" validate:"required,strong-password"`
}

type nameForm struct {
	Name string `json:"name" validate:"required,person-name"`
}

type typeForm struct {
	Type string `json:"type" validate:"required,notification-type"`
}

func TestStrongPassword(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Validate(&passwordForm{Password: "Sup3r!Pass"}))

	bad := []string{
		"alllowercase1!",
		"ALLUPPERCASE1!",
		"NoDigits!!",
		"NoSpecial123A",
		"Ab1!",
	}
	for _, pw := range bad {
		err := v.Validate(&passwordForm{Password: pw})
		require.Error(t, err, pw)

		vErr, ok := err.(*validator.ValidationError)
		require.True(t, ok)
		assert.Contains(t, vErr.Errors, "password")
	}
}

func TestPersonName(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Validate(&nameForm{Name: "Maria Lopez"}))
	assert.NoError(t, v.Validate(&nameForm{Name: "Ñandú Pérez"}))

	for _, name := range []string{"X", "user_123", "Bob!"} {
		assert.Error(t, v.Validate(&nameForm{Name: name}), name)
	}
}

func TestNotificationTypeRule(t *testing.T) {
	v := validator.New()

	for _, typ := range []string{"task", "invitation", "message", "other"} {
		assert.NoError(t, v.Validate(&typeForm{Type: typ}))
	}
	assert.Error(t, v.Validate(&typeForm{Type: "spam"}))
}
