package expiry

import "errors"

var (
	// ErrNotFound is returned by a Store when no value exists for the key.
	ErrNotFound = errors.New("expiry not found")
	// ErrInvalidTimeout is returned when the session timeout is shorter than one second.
	ErrInvalidTimeout = errors.New("session timeout must be at least one second")
	// ErrInvalidBackend marks an unknown or unwired backend. It is logged, never returned.
	ErrInvalidBackend = errors.New("invalid backend, use \"localStorage\" or \"sessionStorage\"")
	// ErrCallbackNotSet is the panic value raised when an armed timer fires without a callback.
	ErrCallbackNotSet = errors.New("expiry callback is not set")
)
