// Package common defines shared sentinel errors used across the service and
// handler layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors (bad input shape/content, user-correctable).
	ErrValidation = errors.New("validation error")

	// Repository-level errors.
	ErrConflict = errors.New("already exists")
	ErrNotFound = errors.New("not found")

	// Auth errors (bad credentials or missing session).
	ErrInvalidCredentials = errors.New("invalid credentials")
)
