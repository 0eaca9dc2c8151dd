package auth

import "time"

// NewTestJWTService creates a JWTService with an injectable clock, used by
// tests to exercise expiry behavior deterministically.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		timeFunc:      timeFunc,
	}
}
