// Package httpx renders API responses and RFC7807 problems.
package httpx

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks a malformed request. Its message is shown to the caller.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden is matched by every authorization denial.
	ErrForbidden = errors.New("forbidden")
)

// deniedDetail is the only detail a denial ever carries, whatever its cause.
const deniedDetail = "access denied"

// RespondError maps err onto a problem response. Denials are indistinguishable
// from one another and anything unrecognised is an opaque 500.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", deniedDetail)
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
