package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// UserStore implements store.UserStore with an in-memory map. A single
// mutex makes the uniqueness check and the insert atomic, matching the
// unique-index guarantee of the SQL backends.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]domain.User
	byUsername map[string]uuid.UUID
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[uuid.UUID]domain.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return store.ErrUsernameExists
	}

	stored := *user
	stored.Password = "" // plaintext never rests in the store
	s.byID[stored.ID] = stored
	s.byUsername[stored.Username] = stored.ID
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	user := s.byID[id]
	return &user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}
