package guard

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means no valid session was presented
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the actor's role cannot use tenant-scoped resources
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the resource does not exist or belongs to another tenant.
	// Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrValidationSkipped marks a sub-field update that was ignored without failing the request
	ErrValidationSkipped = errors.New("validation skipped")
	// ErrInternal marks an unexpected storage or execution failure
	ErrInternal = errors.New("internal error")
)

// Internal wraps an unexpected failure so it maps to ErrInternal while keeping the cause for logs
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

// StatusCode maps a guard error to its HTTP status
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Reason returns a short metric label for a guard error
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
