package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "VALIDATION: age must be a positive number", NewValidationError("age must be a positive number").Error())

	cause := stderrors.New("connection refused")
	err := NewInternalError("failed to read slot", cause)
	assert.Equal(t, "INTERNAL: failed to read slot: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsType_MatchesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NewForbiddenError("access denied"))

	assert.True(t, IsType(wrapped, ErrorTypeForbidden))
	assert.False(t, IsType(wrapped, ErrorTypeUnauthorized))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeInternal))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "access denied", appErr.Message)
}
