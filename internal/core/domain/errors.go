package domain

import "errors"

var (
	// ErrValidation marks input that violates a deal or user invariant.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials covers bad username/password pairs. Lookup misses
	// and password mismatches collapse into it so login responses do not
	// reveal which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is the single error exposed for any bearer token
	// failure: bad signature, expired, malformed, or unknown subject.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrDealNotFound    = errors.New("deal not found")
	// ErrInvalidTransition means the target status is not reachable from the
	// deal's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConcurrentModification means the deal's status changed between read
	// and update; the caller may retry against the fresh state.
	ErrConcurrentModification = errors.New("deal was modified concurrently")
	ErrTooManyAttempts        = errors.New("too many login attempts")
)
