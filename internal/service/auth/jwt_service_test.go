package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hmac"

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()
		_, err := NewJWTService("too-short", 15*time.Minute)
		assert.Error(t, err)
	})

	t.Run("accepts a sufficiently long secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testSecret, 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, svc.TokenLifetime())
	})
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTestJWTService(testSecret, 15*time.Minute, func() time.Time {
		return fixedTime
	})

	token, expiresAt, err := svc.GenerateToken(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.Equal(fixedTime.Add(15*time.Minute)))

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 15 * time.Minute
	wrongSecret := "wrong-secret-that-is-also-long-enough!!"

	at := func(t time.Time) func() time.Time {
		return func() time.Time { return t }
	}

	tests := []struct {
		name      string
		setupFunc func() (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (JWTService, string) {
				svc := NewTestJWTService(testSecret, lifetime, at(fixedTime))
				token, _, _ := svc.GenerateToken(context.Background(), "alice")
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "token expired one minute past its lifetime",
			setupFunc: func() (JWTService, string) {
				genSvc := NewTestJWTService(testSecret, lifetime, at(fixedTime))
				token, _, _ := genSvc.GenerateToken(context.Background(), "alice")

				// 15-minute token verified 16 minutes after issuance.
				valSvc := NewTestJWTService(testSecret, lifetime,
					at(fixedTime.Add(16*time.Minute)))
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			setupFunc: func() (JWTService, string) {
				genSvc := NewTestJWTService(wrongSecret, lifetime, at(fixedTime))
				token, _, _ := genSvc.GenerateToken(context.Background(), "alice")
				valSvc := NewTestJWTService(testSecret, lifetime, at(fixedTime))
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (JWTService, string) {
				svc := NewTestJWTService(testSecret, lifetime, at(fixedTime))
				return svc, "this.is.not.a.valid.jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "validly signed token without a subject",
			setupFunc: func() (JWTService, string) {
				svc := NewTestJWTService(testSecret, lifetime, at(fixedTime))

				claims := jwt.RegisteredClaims{
					IssuedAt:  jwt.NewNumericDate(fixedTime),
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte(testSecret))
				require.NoError(t, err)
				return svc, token
			},
			wantErr: ErrMissingSubject,
		},
		{
			name: "token signed with the wrong algorithm",
			setupFunc: func() (JWTService, string) {
				svc := NewTestJWTService(testSecret, lifetime, at(fixedTime))

				claims := jwt.RegisteredClaims{
					Subject:   "alice",
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).
					SignedString([]byte(testSecret))
				require.NoError(t, err)
				return svc, token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "alice", claims.Subject)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			}
		})
	}
}
