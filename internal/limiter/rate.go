package limiter

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRateRemaining is the remaining-quota header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// minBuffer is the remaining-request floor below which we wait for
	// the window to reset instead of spending the last of the quota.
	minBuffer = 2
)

// RateLimiter throttles outbound GitHub API calls. A token bucket keeps
// the proactive request rate under the configured ceiling, and the state
// parsed from the API's rate-limit headers lets Wait block until the
// quota window resets when the remaining count runs out.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	resetTime time.Time
	bucket    *rate.Limiter
}

func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &RateLimiter{
		remaining: -1, // unknown until the first response
		bucket:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining >= 0 && remaining < minBuffer && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}

	return nil
}

// UpdateFromResponse records the quota state reported by a response.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the last remaining-quota value seen, or -1 when no
// response has been observed yet.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// ResetTime returns the last reset timestamp seen.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
