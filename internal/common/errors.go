// Package common defines sentinel errors and small helpers shared by the
// jobkeeper stores, services and the CLI. Callers should use errors.Is to
// match these values; most are wrapped with context on the way up.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Registration and authentication errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password is too short")
	ErrIncompleteInput    = errors.New("incomplete input")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Persistence errors.
	ErrCorruptStore = errors.New("corrupt store")
	ErrIO           = errors.New("i/o error")

	// Record validation errors.
	ErrInvalidStatus        = errors.New("invalid status")
	ErrMissingRequiredField = errors.New("missing required field")

	// Session errors.
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrNoPendingConfirmation = errors.New("no pending confirmation")
)
