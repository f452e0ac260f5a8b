package dto

import authdomain "focusplan-backend/internal/auth/domain"

// SessionResponse is returned after a successful Google sign-in.
type SessionResponse struct {
	Token string           `json:"token"`
	User  *authdomain.User `json:"user"`
}

// StatusResponse describes whether calendar access is currently usable.
type StatusResponse struct {
	Connected bool   `json:"connected"`
	Email     string `json:"email,omitempty"`
}
