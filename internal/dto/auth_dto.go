package dto

import "time"

// LoginRequest is accepted by the mock login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin student"`
}

// SessionResponse describes the active session without secrets.
type SessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      SessionResponse `json:"user"`
}
