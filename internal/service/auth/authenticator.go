package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// Authenticator resolves inbound session tokens to authenticated users. It
// composes the token verifier with the credential store: a token is only as
// good as the registered user it names.
type Authenticator struct {
	jwtService JWTService
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(jwtService JWTService, userStore store.UserStore, log *slog.Logger) *Authenticator {
	if log == nil {
		log = slog.Default()
	}
	return &Authenticator{
		jwtService: jwtService,
		userStore:  userStore,
		logger:     log.With(slog.String("component", "authenticator")),
	}
}

// Authenticate validates the token and resolves its subject to a registered
// user. Failures: ErrExpiredToken, ErrInvalidToken, ErrMissingSubject from
// token validation, ErrUnknownSubject when the subject has no user row.
// None of these are retried; callers treat them uniformly as
// "unauthenticated".
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := a.jwtService.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := a.userStore.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.logger.Debug("token subject has no registered user",
				slog.String("subject", claims.Subject))
			return nil, ErrUnknownSubject
		}
		a.logger.Error("failed to resolve token subject",
			slog.String("error", err.Error()),
			slog.String("subject", claims.Subject))
		return nil, err
	}

	return user, nil
}
