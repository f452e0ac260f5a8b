package usecase

import (
	"context"
	"errors"

	authdomain "focusplan-backend/internal/auth/domain"
	authdto "focusplan-backend/internal/auth/dto"
)

var (
	// ErrNotConfigured means no OAuth client id exists for the requested platform.
	ErrNotConfigured = errors.New("google oauth client is not configured")
	// ErrAuthCancelled means the user declined or abandoned the consent screen.
	ErrAuthCancelled = errors.New("google sign-in was cancelled")
	// ErrAuthRequired means no usable token exists and interactive consent is needed.
	ErrAuthRequired = errors.New("google authentication required")
	// ErrAuthUnavailable means consent appeared to succeed but no valid token
	// showed up in the store within the polling window.
	ErrAuthUnavailable = errors.New("unable to obtain google credentials")
)

// AuthUsecase manages the Google OAuth token lifecycle and app sessions.
type AuthUsecase interface {
	// AuthURL builds the consent URL for the given platform (web, ios, android).
	AuthURL(platform string) (string, error)

	// HandleCallback exchanges the authorization code, stores the token
	// bundle and returns an app session for the signed-in user.
	HandleCallback(ctx context.Context, code, callbackErr string) (*authdto.SessionResponse, error)

	// EnsureAuthenticated returns a non-expired token bundle for the user,
	// refreshing if possible. Returns ErrAuthRequired when consent is needed.
	EnsureAuthenticated(ctx context.Context, userID string) (*authdomain.TokenBundle, error)

	// WaitForToken polls the token store for a short bounded window after a
	// consent flow, tolerating asynchronous storage writes.
	WaitForToken(ctx context.Context, userID string) (*authdomain.TokenBundle, error)

	// Disconnect clears the in-memory and persisted token. Idempotent.
	Disconnect(userID string) error

	// Status reports whether calendar access is currently usable without
	// a new consent flow.
	Status(userID string) (*authdto.StatusResponse, error)

	// ValidateToken verifies an app session token and returns its user.
	ValidateToken(token string) (*authdomain.User, error)

	// GetUser returns the stored account for the given id.
	GetUser(userID string) (*authdomain.User, error)
}
