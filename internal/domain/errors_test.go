package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryError(t *testing.T) {
	pair := DatePair{Departure: date(2026, 3, 1), Return: datePtr(2026, 3, 11)}
	underlying := errors.New("connection refused")

	t.Run("non-retryable", func(t *testing.T) {
		err := NewQueryError(pair, underlying)

		assert.Contains(t, err.Error(), "2026-03-01/2026-03-11")
		assert.Contains(t, err.Error(), "connection refused")
		assert.False(t, err.Retryable)
		assert.ErrorIs(t, err, underlying)
	})

	t.Run("retryable", func(t *testing.T) {
		err := NewRetryableQueryError(pair, underlying)

		assert.True(t, err.Retryable)
		assert.True(t, IsRetryable(err))
	})

	t.Run("unwraps through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewRetryableQueryError(pair, underlying))

		assert.True(t, IsRetryable(err))

		var qe *QueryError
		require.True(t, errors.As(err, &qe))
		assert.Equal(t, "2026-03-01/2026-03-11", qe.Pair.Key())
	})
}

func TestIsRetryable_NonQueryError(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}

func TestAPIError(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := &APIError{Status: 401, Message: "token is invalid"}
		assert.Equal(t, "fare API error: status 401: token is invalid", err.Error())
	})

	t.Run("without message", func(t *testing.T) {
		err := &APIError{Status: 500}
		assert.Equal(t, "fare API error: status 500", err.Error())
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		pair := DatePair{Departure: date(2026, 3, 1)}
		wrapped := NewRetryableQueryError(pair, &APIError{Status: 429})

		apiErr, ok := IsAPIError(wrapped)
		require.True(t, ok)
		assert.Equal(t, 429, apiErr.Status)
	})
}

func TestWrapInvalidParams(t *testing.T) {
	err := WrapInvalidParams("origin %q is bad", "XX")

	assert.True(t, IsInvalidParams(err))
	assert.Contains(t, err.Error(), `origin "XX" is bad`)
}

func TestSentinelCheckers(t *testing.T) {
	assert.True(t, IsNoTicketsFound(ErrNoTicketsFound))
	assert.True(t, IsNoTicketsFound(fmt.Errorf("search: %w", ErrNoTicketsFound)))
	assert.False(t, IsNoTicketsFound(ErrInvalidParams))

	assert.True(t, IsInvalidParams(ErrInvalidParams))
	assert.False(t, IsInvalidParams(ErrNoTicketsFound))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("origin", "origin is required")
	assert.Equal(t, "origin: origin is required", err.Error())
}
