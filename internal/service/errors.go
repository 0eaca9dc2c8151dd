package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrUsernameTaken indicates a registration attempt with a username
	// that already exists. API layer should map this to HTTP 409 Conflict.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials indicates a failed login. Unknown usernames
	// and wrong passwords both surface as this error so the response does
	// not reveal which usernames are registered. API layer should map this
	// to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTaskNotFound indicates the task does not exist for the requesting
	// user. Tasks owned by other users surface identically. API layer
	// should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")
)
