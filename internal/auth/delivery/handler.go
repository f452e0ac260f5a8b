package delivery

import (
	"errors"
	"net/http"

	"focusplan-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles Google OAuth and session HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// GoogleAuthURL returns the consent URL for the requesting platform
// GET /api/auth/google/url?platform=web|ios|android
func (h *AuthHandler) GoogleAuthURL(c *gin.Context) {
	platform := c.DefaultQuery("platform", "web")

	url, err := h.authUsecase.AuthURL(platform)
	if err != nil {
		if errors.Is(err, usecase.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth is not configured for this platform"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GoogleCallback completes the consent flow
// GET /api/auth/google/callback?code=...&error=...
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	callbackErr := c.Query("error")

	session, err := h.authUsecase.HandleCallback(c.Request.Context(), code, callbackErr)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAuthCancelled):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in was cancelled"})
		case errors.Is(err, usecase.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth is not configured"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Session polls for a freshly hydrated token after consent
// GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	userID := c.GetString("userID")

	bundle, err := h.authUsecase.WaitForToken(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrAuthUnavailable) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Unable to obtain Google credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true, "scope": bundle.Scope})
}

// Status reports whether calendar access is currently usable
// GET /api/auth/status
func (h *AuthHandler) Status(c *gin.Context) {
	userID := c.GetString("userID")

	status, err := h.authUsecase.Status(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Me returns the signed-in user's account
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authUsecase.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Disconnect clears the stored Google credentials
// POST /api/auth/disconnect
func (h *AuthHandler) Disconnect(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.authUsecase.Disconnect(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Disconnected from Google Calendar"})
}
