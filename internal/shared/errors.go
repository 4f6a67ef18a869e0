package shared

import (
	"errors"

	"github.com/odontia/odontia/internal/platform/httpx"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates the bearer token could not be verified.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is matched by every authorization denial.
	ErrForbidden = httpx.ErrForbidden
)
