package service

import "errors"

// Business-rule and lookup failures surfaced to the route boundary. Auth
// middleware failures redirect instead, and unexpected errors are left to
// gin's recovery handler.
var (
	// ErrNotFound is returned when a requested user or post does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned when a password does not match the
	// stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when signup reuses a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrCapacityExceeded is returned when the global user cap is reached.
	ErrCapacityExceeded = errors.New("maximum number of users reached")

	// ErrQuotaExceeded is returned when a user already holds the maximum
	// number of posts.
	ErrQuotaExceeded = errors.New("post quota exceeded")
)
