package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/service/auth"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// UserService provides registration and login.
type UserService interface {
	// Register creates a new user with the given credentials. The password
	// is hashed before it reaches the store; the returned user never
	// carries plaintext. Returns ErrUsernameTaken if the username exists,
	// or a domain validation error for malformed credentials.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies the credentials and issues a session token together
	// with its expiry time. Unknown usernames and wrong passwords both
	// return ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new user with a hashed password.
func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		s.logger.Debug("registration rejected by validation",
			slog.String("username", username),
			slog.String("error", err.Error()))
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("registration rejected, username taken",
				slog.String("username", username))
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return user, nil
}

// Login verifies the credentials and issues a session token.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown username",
				slog.String("username", username))
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("failed to log in: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			slog.String("username", username))
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateToken(ctx, user.Username)
	if err != nil {
		s.logger.Error("failed to generate session token",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return token, expiresAt, nil
}
