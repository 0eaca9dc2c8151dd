package store

import (
	"errors"
	"fmt"
)

// Common store errors. Backend adapters translate driver-specific failures
// to these sentinels at the boundary so no caller ever branches on a
// database error code.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. A task owned by another user is reported with the same error as
	// a nonexistent task, so callers cannot probe for foreign IDs.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint.
	ErrDuplicate = errors.New("entity already exists")

	// Entity-specific variants, wrapping the generic sentinels so both
	// levels match with errors.Is.

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskNotFound indicates the requested task does not exist for the
	// given owner.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrUsernameExists indicates a user with the given username is already
	// registered.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
