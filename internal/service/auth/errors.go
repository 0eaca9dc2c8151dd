package auth

import "errors"

// Common authentication service errors. The API layer reports all of them
// to the caller as one generic "unauthenticated" outcome; the distinct
// sentinels exist for logging and tests.
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't verify.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's expiry is in the past.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingSubject indicates a validly signed token without a subject
	// claim.
	ErrMissingSubject = errors.New("authentication token has no subject")

	// ErrUnknownSubject indicates a valid token whose subject is not a
	// registered user.
	ErrUnknownSubject = errors.New("authentication token subject is unknown")

	// ErrInvalidCredentials indicates a failed username/password login.
	// Unknown usernames and wrong passwords are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
