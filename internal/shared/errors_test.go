package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"email":    "must be a valid email address",
		"password": "must be at least 6 characters",
	}}

	// Fields print sorted so the message does not flap between runs.
	assert.Equal(t, "validation failed: email: must be a valid email address; password: must be at least 6 characters", err.Error())

	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("email", "is required")))
	assert.True(t, IsValidation(fmt.Errorf("create client: %w", NewValidationError("email", "is required"))))
	assert.False(t, IsValidation(ErrNotFound))
	assert.False(t, IsValidation(nil))
}

func TestFromValidator(t *testing.T) {
	type input struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}

	v := validator.New()

	assert.NoError(t, FromValidator(v.Struct(input{Email: "ada@epic.example", Password: "s3cretpw"})))

	err := FromValidator(v.Struct(input{Email: "nope", Password: "ok"}))
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a valid email address", ve.Fields["email"])
	assert.Equal(t, "must be at least 6 characters", ve.Fields["password"])

	// Non-validator errors pass through untouched.
	plain := errors.New("boom")
	assert.Same(t, plain, FromValidator(plain))
}
