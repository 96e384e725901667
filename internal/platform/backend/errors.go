package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the backend answers 401.
	ErrUnauthorized = errors.New("backend rejected the credentials")

	// ErrForbidden is returned when the backend answers 403.
	ErrForbidden = errors.New("backend denied access")

	// ErrTokenExpired is returned without contacting the backend when the
	// configured token is a JWT whose exp claim is in the past.
	ErrTokenExpired = errors.New("auth token has expired")

	// ErrUnexpectedStatus wraps any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected backend response status")

	// ErrInvalidResponse is returned when a response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// StatusError carries the HTTP status and a truncated body of a failed call.
type StatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v (status %d)", e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%v (status %d): %s", e.Err, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the call is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500
}
