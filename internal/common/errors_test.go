package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("`username` is required"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "`username` is required", ve.Message)
}

func TestConflictError_UnwrapsToSentinel(t *testing.T) {
	err := NewConflictError("expected `username` to be unique")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "expected `username` to be unique", err.Error())
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized", ErrorUnauthorized, true},
		{"invalid token", fmt.Errorf("verify: %w", ErrInvalidToken), true},
		{"unknown user", ErrUnknownUser, true},
		{"not found", ErrorNotFound, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnauthorized(tt.err))
		})
	}
}
