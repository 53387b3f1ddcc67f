// Package common defines shared sentinel errors used across the Resilia
// data layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input errors.
	ErrMissingField = errors.New("missing field")

	// Account directory errors.
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("not found")

	// Session errors. ErrInvalidCredentials never says which credential was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")

	// Storage errors. Reads recover from these locally; writes return them.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
