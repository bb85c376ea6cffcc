package githubapi

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitError(t *testing.T) {
	resetAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	err := &RateLimitError{ResetAt: resetAt}

	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Contains(t, err.Error(), "2025-01-02T03:04:05Z")
	assert.True(t, IsRateLimited(err))
	assert.True(t, IsRateLimited(fmt.Errorf("search: %w", err)))
	assert.False(t, IsRateLimited(errors.New("something else")))
}

func TestAPIErrorHelpers(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
	}{
		{
			name:     "404",
			err:      &APIError{StatusCode: 404, Message: "Not Found"},
			notFound: true,
		},
		{
			name:         "401",
			err:          &APIError{StatusCode: 401, Message: "Bad credentials"},
			unauthorized: true,
		},
		{
			name:         "missing token",
			err:          ErrMissingToken,
			unauthorized: true,
		},
		{
			name: "500",
			err:  &APIError{StatusCode: 500, Message: "oops"},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
		})
	}
}

func TestMalformedError(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := &MalformedError{URL: "https://api.github.com/users/x", Err: inner}

	assert.True(t, IsMalformed(err))
	assert.True(t, IsMalformed(fmt.Errorf("fetch: %w", err)))
	assert.ErrorIs(t, err, inner)
	assert.False(t, IsMalformed(errors.New("fine")))
}
