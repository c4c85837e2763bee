package common

import "errors"

// Caller-attributable errors. Anything not listed here is treated as a
// storage failure: logged with detail, surfaced as a generic 500.
var (
	ErrValidation         = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// ErrMemoryNotFound covers both "no such memory" and "someone else's
	// memory". Collapsing the two keeps other users' ids unguessable.
	ErrMemoryNotFound = errors.New("memory not found")
)
