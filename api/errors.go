package api

import "fmt"

// ValidationError reports malformed caller input. It is returned before any
// network I/O happens and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// AuthenticationError reports a 401 or 403 response from the backend. It is
// surfaced immediately, without retries.
type AuthenticationError struct {
	StatusCode int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected with status %d", e.StatusCode)
}

// RateLimitError reports a 429 response. RetryAfter carries the backend's
// Retry-After hint in seconds; callers decide whether and when to retry.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfter)
}

// TimeoutError reports a request that exceeded its deadline, after the retry
// budget was exhausted.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// NetworkError reports a connection-level failure, after the retry budget was
// exhausted.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError reports any other non-2xx response. Message holds the error
// text extracted from the response body.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}
