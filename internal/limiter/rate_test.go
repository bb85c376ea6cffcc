package limiter

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(remaining string, reset time.Time) *http.Response {
	header := http.Header{}
	if remaining != "" {
		header.Set(HeaderRateRemaining, remaining)
	}
	if !reset.IsZero() {
		header.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	}
	return &http.Response{Header: header}
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	t.Run("parses quota headers", func(t *testing.T) {
		r := NewRateLimiter(100)
		reset := time.Now().Add(time.Hour)

		r.UpdateFromResponse(responseWith("4999", reset))

		assert.Equal(t, 4999, r.Remaining())
		assert.Equal(t, reset.Unix(), r.ResetTime().Unix())
	})

	t.Run("remaining is unknown before the first response", func(t *testing.T) {
		r := NewRateLimiter(100)
		assert.Equal(t, -1, r.Remaining())
	})

	t.Run("ignores garbage and nil responses", func(t *testing.T) {
		r := NewRateLimiter(100)
		r.UpdateFromResponse(nil)
		r.UpdateFromResponse(responseWith("not-a-number", time.Time{}))
		assert.Equal(t, -1, r.Remaining())
	})
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("passes through while quota remains", func(t *testing.T) {
		r := NewRateLimiter(1000)
		r.UpdateFromResponse(responseWith("100", time.Now().Add(time.Hour)))

		start := time.Now()
		require.NoError(t, r.Wait(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("blocks until the reset when the quota is spent", func(t *testing.T) {
		r := NewRateLimiter(1000)
		reset := time.Now().Add(300 * time.Millisecond)
		r.UpdateFromResponse(responseWith("0", reset))

		require.NoError(t, r.Wait(context.Background()))
		assert.False(t, time.Now().Before(reset), "Wait returned before the reset")
	})

	t.Run("honors context cancellation during the wait", func(t *testing.T) {
		r := NewRateLimiter(1000)
		r.UpdateFromResponse(responseWith("0", time.Now().Add(time.Hour)))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := r.Wait(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("throttles to the configured request rate", func(t *testing.T) {
		r := NewRateLimiter(20) // 50ms between requests
		ctx := context.Background()

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, r.Wait(ctx))
		}
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})
}
