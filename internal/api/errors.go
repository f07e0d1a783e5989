package api

import "errors"

var (
	// ErrNotAuthorized indicates the backend rejected the caller's
	// credentials or role (HTTP 401/403). The UI reacts by silently
	// returning to the login view; no message is shown.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNotFound indicates the requested entity does not exist (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the backend rejected the request body
	// (HTTP 400/422). The wrapped text carries the server's detail.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates the backend is unreachable.
	ErrUnavailable = errors.New("server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
