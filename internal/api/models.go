package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse defines the successful response for registration.
type RegisterResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// Token is the bearer token for subsequent API requests.
	Token string `json:"token"`

	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
}

// TaskRequest defines the payload for creating a task and for updating one;
// updates rewrite the full mutable field set.
type TaskRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Priority    int    `json:"priority"    validate:"required,min=1"`
	Status      string `json:"status"      validate:"required,oneof=done pending"`
}
