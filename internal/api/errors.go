package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/swipefeed/internal/api/shared"
	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/feed"
	"github.com/phrazzld/swipefeed/internal/platform/backend"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, backend.ErrUnauthorized),
		errors.Is(err, backend.ErrTokenExpired):
		return http.StatusUnauthorized

	case errors.Is(err, backend.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, feed.ErrEmptyQueue),
		errors.Is(err, feed.ErrCommitInFlight):
		return http.StatusConflict

	case errors.Is(err, feed.ErrEngineClosed):
		return http.StatusServiceUnavailable

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	case errors.Is(err, backend.ErrUnexpectedStatus),
		errors.Is(err, backend.ErrInvalidResponse):
		return http.StatusBadGateway

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, backend.ErrTokenExpired):
		return "Session expired, please log in again"
	case errors.Is(err, backend.ErrUnauthorized):
		return "Not authorized, please log in again"
	case errors.Is(err, backend.ErrForbidden):
		return "Access forbidden"
	case errors.Is(err, feed.ErrEmptyQueue):
		return "No more profiles"
	case errors.Is(err, feed.ErrCommitInFlight):
		return "A decision is already in progress"
	case errors.Is(err, feed.ErrEngineClosed):
		return "Feed is shutting down"
	case errors.Is(err, domain.ErrInvalidDecision):
		return "Invalid decision"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid candidate ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	case errors.Is(err, backend.ErrUnexpectedStatus),
		errors.Is(err, backend.ErrInvalidResponse):
		return "Backend unavailable, please try again"
	case errors.Is(err, context.DeadlineExceeded):
		return "Backend timed out, please try again"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", lowerFirst(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
