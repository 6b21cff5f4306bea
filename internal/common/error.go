// Package common defines shared constants and sentinel errors used across
// client and server layers of AlumniLink. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors (missing or malformed input).
	ErrValidation = errors.New("validation error")

	// Auth errors. Tampered, expired and malformed tokens all map to
	// ErrInvalidToken.
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token signing secret is not configured")

	// Object storage is not configured on the server.
	ErrStorageDisabled = errors.New("object storage disabled")
)
