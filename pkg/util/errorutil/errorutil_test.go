package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestToDomainError_PassesThroughWrapped(t *testing.T) {
	orig := NewConflict("email already registered", nil)
	wrapped := fmt.Errorf("register: %w", orig)

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
}

func TestToDomainError_NoRowsIsNotFound(t *testing.T) {
	de := ToDomainError(fmt.Errorf("get brief: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainError_FiberError(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusTooManyRequests, "slow down"))
	assert.Equal(t, "RATE_LIMITED", de.Code)
	assert.Equal(t, http.StatusTooManyRequests, de.HTTPStatus)
	assert.Equal(t, "slow down", de.Message)
}

func TestToDomainError_Unknown(t *testing.T) {
	cause := errors.New("boom")
	de := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
}

func TestMatchNotFoundAndNoAccessAreDistinct(t *testing.T) {
	notFound := ToDomainError(NewMatchNotFound("m1"))
	noAccess := ToDomainError(NewNoAccess("m1"))

	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	assert.Equal(t, http.StatusForbidden, noAccess.HTTPStatus)
	assert.NotEqual(t, notFound.Code, noAccess.Code)
	assert.Equal(t, "m1", noAccess.Details["match_id"])
}
