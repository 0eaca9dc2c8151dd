package auth

import (
	"context"
	"time"
)

// JWTService manages stateless signed session tokens. Tokens bind a
// username (the subject) to an expiry; the server keeps no session record.
type JWTService interface {
	// GenerateToken creates a signed token for the given username and
	// returns it together with its expiry, TokenLifetime from now. The
	// returned time is the exact instant in the token's exp claim.
	GenerateToken(ctx context.Context, username string) (string, time.Time, error)

	// ValidateToken verifies the token's signature and time claims and
	// returns the embedded claims. Validation is pure: it never touches
	// storage. Failure sentinels: ErrExpiredToken, ErrInvalidToken,
	// ErrMissingSubject.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime returns the configured validity window of issued tokens.
	TokenLifetime() time.Duration
}

// Claims is the decoded content of a session token.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject string

	IssuedAt  time.Time
	ExpiresAt time.Time
}
