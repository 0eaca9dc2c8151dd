package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines one-way password hashing and verification.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of the password. The result is
	// non-deterministic: hashing the same password twice yields different
	// blobs that both verify.
	Hash(password string) (string, error)

	// Compare checks a hashed password against a plaintext candidate.
	// Returns nil on match and an error on mismatch. A malformed stored
	// hash fails like a mismatch rather than panicking.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt, which is salted and
// deliberately slow so offline brute force stays expensive.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost. Costs outside
// bcrypt's supported range fall back to the default cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.Hash.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements PasswordHasher.Compare.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
