package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"
	authdto "focusplan-backend/internal/auth/dto"
	"focusplan-backend/internal/auth/repository"
	"focusplan-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	// Post-consent hydration: the callback persists the bundle
	// asynchronously from the client's point of view, so poll briefly.
	hydrationAttempts = 10
	hydrationDelay    = 200 * time.Millisecond

	fallbackExpirySeconds = 3600
)

var oauthScopes = []string{
	calendar.CalendarReadonlyScope,
	calendar.CalendarEventsScope,
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	config    *config.Config

	mu    sync.RWMutex
	cache map[string]*authdomain.TokenBundle
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		config:    cfg,
		cache:     make(map[string]*authdomain.TokenBundle),
	}
}

// resolveClientID picks the OAuth client for the platform, falling back to
// the shared web client id.
func (u *authUsecase) resolveClientID(platform string) (string, error) {
	var clientID string
	switch platform {
	case "ios":
		clientID = u.config.GoogleIOSClientID
	case "android":
		clientID = u.config.GoogleAndroidClientID
	}
	if clientID == "" {
		clientID = u.config.GoogleClientID
	}
	if clientID == "" {
		return "", ErrNotConfigured
	}
	return clientID, nil
}

func (u *authUsecase) oauthConfig(clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: u.config.GoogleClientSecret,
		RedirectURL:  u.config.GoogleRedirectURI,
		Scopes:       oauthScopes,
		Endpoint:     google.Endpoint,
	}
}

func (u *authUsecase) AuthURL(platform string) (string, error) {
	clientID, err := u.resolveClientID(platform)
	if err != nil {
		return "", err
	}
	cfg := u.oauthConfig(clientID)
	// AccessTypeOffline so Google returns a refresh token; prompt=consent
	// forces re-issue for returning users.
	return cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

func (u *authUsecase) HandleCallback(ctx context.Context, code, callbackErr string) (*authdto.SessionResponse, error) {
	if callbackErr != "" {
		return nil, fmt.Errorf("%w: %s", ErrAuthCancelled, callbackErr)
	}
	if code == "" {
		return nil, ErrAuthCancelled
	}

	clientID, err := u.resolveClientID("web")
	if err != nil {
		return nil, err
	}
	cfg := u.oauthConfig(clientID)

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := u.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := u.upsertUser(info)
	if err != nil {
		return nil, err
	}

	bundle := bundleFromToken(user.ID, token)
	if err := u.tokenRepo.Save(bundle); err != nil {
		return nil, fmt.Errorf("failed to persist token bundle: %w", err)
	}
	u.mu.Lock()
	u.cache[user.ID] = bundle
	u.mu.Unlock()

	session, err := u.generateSessionToken(user)
	if err != nil {
		return nil, err
	}

	return &authdto.SessionResponse{Token: session, User: user}, nil
}

func (u *authUsecase) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	svc, err := goauth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch google user info: %w", err)
	}
	return info, nil
}

func (u *authUsecase) upsertUser(info *goauth2.Userinfo) (*authdomain.User, error) {
	user, err := u.userRepo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &authdomain.User{
			Email:     info.Email,
			Name:      info.Name,
			AvatarURL: info.Picture,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	user.Name = info.Name
	user.AvatarURL = info.Picture
	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) EnsureAuthenticated(ctx context.Context, userID string) (*authdomain.TokenBundle, error) {
	now := time.Now()

	// In-memory token first: no I/O when it is still valid.
	u.mu.RLock()
	cached := u.cache[userID]
	u.mu.RUnlock()
	if cached != nil && !cached.IsExpired(now) {
		return cached, nil
	}

	stored, err := u.tokenRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if stored != nil && !stored.IsExpired(now) {
		u.mu.Lock()
		u.cache[userID] = stored
		u.mu.Unlock()
		return stored, nil
	}

	if stored != nil && stored.RefreshToken != "" {
		refreshed, err := u.refresh(ctx, stored)
		if err != nil {
			return nil, fmt.Errorf("%w: refresh failed: %v", ErrAuthRequired, err)
		}
		return refreshed, nil
	}

	return nil, ErrAuthRequired
}

// refresh trades the stored refresh token for a new access token and
// persists the replacement bundle.
func (u *authUsecase) refresh(ctx context.Context, stale *authdomain.TokenBundle) (*authdomain.TokenBundle, error) {
	clientID, err := u.resolveClientID("web")
	if err != nil {
		return nil, err
	}
	cfg := u.oauthConfig(clientID)

	source := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: stale.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, err
	}

	bundle := bundleFromToken(stale.UserID, token)
	if bundle.RefreshToken == "" {
		// Google omits the refresh token on refresh responses; keep the old one.
		bundle.RefreshToken = stale.RefreshToken
	}
	if err := u.tokenRepo.Save(bundle); err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.cache[bundle.UserID] = bundle
	u.mu.Unlock()
	return bundle, nil
}

func (u *authUsecase) WaitForToken(ctx context.Context, userID string) (*authdomain.TokenBundle, error) {
	for attempt := 0; attempt < hydrationAttempts; attempt++ {
		stored, err := u.tokenRepo.FindByUserID(userID)
		if err == nil && stored != nil && !stored.IsExpired(time.Now()) {
			u.mu.Lock()
			u.cache[userID] = stored
			u.mu.Unlock()
			return stored, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(hydrationDelay):
		}
	}
	return nil, ErrAuthUnavailable
}

func (u *authUsecase) Disconnect(userID string) error {
	u.mu.Lock()
	delete(u.cache, userID)
	u.mu.Unlock()
	return u.tokenRepo.DeleteByUserID(userID)
}

func (u *authUsecase) Status(userID string) (*authdto.StatusResponse, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	bundle, err := u.tokenRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	connected := bundle != nil && (!bundle.IsExpired(time.Now()) || bundle.RefreshToken != "")
	status := &authdto.StatusResponse{Connected: connected}
	if user != nil {
		status.Email = user.Email
	}
	return status, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (u *authUsecase) GetUser(userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (u *authUsecase) generateSessionToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTSessionExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func bundleFromToken(userID string, token *oauth2.Token) *authdomain.TokenBundle {
	expiresIn := int64(fallbackExpirySeconds)
	if !token.Expiry.IsZero() {
		expiresIn = int64(time.Until(token.Expiry).Seconds())
		if expiresIn < 0 {
			// An already-lapsed exchange response must not be recorded as
			// valid for the fallback hour.
			expiresIn = 0
		}
	}
	bundle := &authdomain.TokenBundle{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    expiresIn,
		IssuedAt:     time.Now(),
		TokenType:    token.TokenType,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		bundle.Scope = scope
	}
	return bundle
}
