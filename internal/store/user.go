package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// UserStore defines the interface for credential persistence. Users are
// created once at registration and never updated or deleted by this core.
type UserStore interface {
	// Create saves a new user. The user must carry a HashedPassword; the
	// store never sees plaintext. The uniqueness check and the insert are
	// atomic with respect to concurrent registrations: at most one Create
	// for a given username succeeds, the others observe ErrUsernameExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
