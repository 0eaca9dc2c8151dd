package domain

import "errors"

// Common validation errors returned by entity constructors and Validate
// methods. Callers check these with errors.Is.
var (
	ErrEmptyUserID        = errors.New("user ID cannot be empty")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong    = errors.New("username must be at most 50 characters long")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner     = errors.New("task owner cannot be empty")
	ErrEmptyTaskName      = errors.New("task name cannot be empty")
	ErrTaskNameTooLong    = errors.New("task name must be at most 100 characters long")
	ErrDescriptionTooLong = errors.New("task description must be at most 500 characters long")
	ErrInvalidPriority    = errors.New("task priority must be at least 1")
	ErrInvalidStatus      = errors.New("task status must be 'done' or 'pending'")
)
