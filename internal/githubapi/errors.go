package githubapi

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingToken indicates no access token was supplied. The run cannot
// start without a credential.
var ErrMissingToken = errors.New("githubapi: access token is required")

// RateLimitError reports quota exhaustion together with the reset time
// parsed from the response headers. The caller recovers from it by
// sleeping until the reset, so it never escapes a request.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("githubapi: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError is any non-200 response that is not a rate limit.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("githubapi: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// MalformedError is a response body that did not decode to the shape
// the endpoint promises.
type MalformedError struct {
	URL string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("githubapi: malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the error is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsUnauthorized reports whether the error is an authentication failure.
// These are fatal and never retried.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrMissingToken) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsRateLimited reports whether the error carries rate-limit reset info.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsMalformed reports whether the error is an undecodable response body.
func IsMalformed(err error) bool {
	var malformedErr *MalformedError
	return errors.As(err, &malformedErr)
}
