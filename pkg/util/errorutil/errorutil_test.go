package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorWrapsGenericErrors(t *testing.T) {
	err := ToDomainError(errors.New("boom"))

	require.NotNil(t, err)
	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewUnauthorized("no session")

	err := ToDomainError(original)
	assert.Equal(t, "UNAUTHORIZED", err.Code)
	assert.Equal(t, "no session", err.Message)
}

func TestToDomainErrorUnwrapsWrappedDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading session: %w", NewNotFound("ticket", nil))

	err := ToDomainError(wrapped)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewBackendErrorFallbacks(t *testing.T) {
	err := ToDomainError(NewBackendError("", 0))

	assert.Equal(t, "BACKEND_ERROR", err.Code)
	assert.NotEmpty(t, err.Message)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)

	withMessage := ToDomainError(NewBackendError("Invalid credentials", http.StatusUnauthorized))
	assert.Equal(t, "Invalid credentials", withMessage.Message)
	assert.Equal(t, http.StatusUnauthorized, withMessage.HTTPStatus)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsUnreachable(NewBackendUnreachable(errors.New("refused"))))
	assert.False(t, IsUnreachable(NewBackendError("nope", 400)))

	assert.True(t, IsNotFound(NewNotFound("ticket", nil)))
	assert.False(t, IsNotFound(NewValidationError("bad", nil)))
	assert.False(t, IsNotFound(nil))
}
