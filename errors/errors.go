package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrUserAlreadyExists  = fmt.Errorf("account already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrMissingDetails     = fmt.Errorf("missing details")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrEmptyMessage       = fmt.Errorf("message needs a text or an image")
	ErrInvalidImage       = fmt.Errorf("uploaded data is not an image")
	ErrSinkSaturated      = fmt.Errorf("connection sink saturated")
)

// MapToStatus translates a domain error into the HTTP status code used by the
// JSON envelope. Unknown errors stay opaque with a 500.
func MapToStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMissingDetails), errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
