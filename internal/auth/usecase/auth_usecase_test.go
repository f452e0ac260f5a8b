package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"
	"focusplan-backend/internal/auth/repository"
	"focusplan-backend/pkg/config"

	"golang.org/x/oauth2"
)

func newTestAuthUsecase(cfg *config.Config) (*authUsecase, repository.TokenRepository) {
	if cfg == nil {
		cfg = &config.Config{JWTSecret: "test-secret", GoogleClientID: "web-client"}
	}
	tokenRepo := repository.NewMemoryTokenRepository()
	uc := NewAuthUsecase(repository.NewMemoryUserRepository(), tokenRepo, cfg).(*authUsecase)
	return uc, tokenRepo
}

func freshBundle(userID string) *authdomain.TokenBundle {
	return &authdomain.TokenBundle{
		UserID:      userID,
		AccessToken: "fresh-" + userID,
		ExpiresIn:   3600,
		IssuedAt:    time.Now(),
	}
}

func expiredBundle(userID string) *authdomain.TokenBundle {
	return &authdomain.TokenBundle{
		UserID:      userID,
		AccessToken: "stale-" + userID,
		ExpiresIn:   3600,
		IssuedAt:    time.Now().Add(-2 * time.Hour),
	}
}

func TestEnsureAuthenticatedPrefersMemoryCache(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	cached := freshBundle("u1")
	cached.AccessToken = "from-cache"
	uc.cache["u1"] = cached

	stored := freshBundle("u1")
	stored.AccessToken = "from-store"
	if err := tokenRepo.Save(stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	bundle, err := uc.EnsureAuthenticated(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureAuthenticated: %v", err)
	}
	if bundle.AccessToken != "from-cache" {
		t.Errorf("token = %q, want the cached bundle without a store read", bundle.AccessToken)
	}
}

func TestEnsureAuthenticatedAdoptsStoredBundle(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	if err := tokenRepo.Save(freshBundle("u1")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	bundle, err := uc.EnsureAuthenticated(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureAuthenticated: %v", err)
	}
	if bundle.AccessToken != "fresh-u1" {
		t.Errorf("token = %q, want the stored bundle", bundle.AccessToken)
	}
	if uc.cache["u1"] == nil {
		t.Error("stored bundle should be adopted into the memory cache")
	}
}

func TestEnsureAuthenticatedExpiredCacheFallsThroughToStore(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	uc.cache["u1"] = expiredBundle("u1")
	stored := freshBundle("u1")
	stored.AccessToken = "from-store"
	if err := tokenRepo.Save(stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	bundle, err := uc.EnsureAuthenticated(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureAuthenticated: %v", err)
	}
	if bundle.AccessToken != "from-store" {
		t.Errorf("token = %q, want the store to supersede an expired cache entry", bundle.AccessToken)
	}
}

func TestEnsureAuthenticatedRequiresAuthWhenNothingUsable(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	// No bundle at all.
	if _, err := uc.EnsureAuthenticated(context.Background(), "u1"); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("empty store: err = %v, want ErrAuthRequired", err)
	}

	// Expired bundle without a refresh token cannot be revived.
	if err := tokenRepo.Save(expiredBundle("u2")); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if _, err := uc.EnsureAuthenticated(context.Background(), "u2"); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("expired without refresh: err = %v, want ErrAuthRequired", err)
	}
}

func TestWaitForTokenReturnsHydratedBundle(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	if err := tokenRepo.Save(freshBundle("u1")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	bundle, err := uc.WaitForToken(context.Background(), "u1")
	if err != nil {
		t.Fatalf("WaitForToken: %v", err)
	}
	if bundle.AccessToken != "fresh-u1" {
		t.Errorf("token = %q", bundle.AccessToken)
	}
	if uc.cache["u1"] == nil {
		t.Error("hydrated bundle should be cached")
	}
}

func TestWaitForTokenExhaustsPollingWindow(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	// An expired bundle never satisfies the poll; the window must run out.
	if err := tokenRepo.Save(expiredBundle("u1")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	start := time.Now()
	_, err := uc.WaitForToken(context.Background(), "u1")
	if !errors.Is(err, ErrAuthUnavailable) {
		t.Fatalf("err = %v, want ErrAuthUnavailable", err)
	}
	if elapsed := time.Since(start); elapsed < hydrationAttempts*hydrationDelay/2 {
		t.Errorf("poll returned after %v, expected it to use the retry schedule", elapsed)
	}
}

func TestWaitForTokenHonorsContextCancellation(t *testing.T) {
	uc, _ := newTestAuthUsecase(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := uc.WaitForToken(ctx, "u1"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDisconnectClearsCacheAndStoreIdempotently(t *testing.T) {
	uc, tokenRepo := newTestAuthUsecase(nil)

	uc.cache["u1"] = freshBundle("u1")
	if err := tokenRepo.Save(freshBundle("u1")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if err := uc.Disconnect("u1"); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if uc.cache["u1"] != nil {
		t.Error("cache should be cleared")
	}
	if stored, _ := tokenRepo.FindByUserID("u1"); stored != nil {
		t.Error("store should be cleared")
	}

	// Second disconnect is a no-op, not an error.
	if err := uc.Disconnect("u1"); err != nil {
		t.Errorf("repeated Disconnect: %v", err)
	}
}

func TestAuthURLWithoutClientID(t *testing.T) {
	uc, _ := newTestAuthUsecase(&config.Config{JWTSecret: "test-secret"})

	if _, err := uc.AuthURL("web"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestAuthURLPlatformFallback(t *testing.T) {
	uc, _ := newTestAuthUsecase(&config.Config{
		JWTSecret:         "test-secret",
		GoogleClientID:    "web-client",
		GoogleIOSClientID: "ios-client",
	})

	iosURL, err := uc.AuthURL("ios")
	if err != nil {
		t.Fatalf("AuthURL(ios): %v", err)
	}
	androidURL, err := uc.AuthURL("android")
	if err != nil {
		t.Fatalf("AuthURL(android): %v", err)
	}

	if !strings.Contains(iosURL, "ios-client") {
		t.Errorf("ios url should use the ios client id: %s", iosURL)
	}
	// No android client configured, so the shared web id applies.
	if !strings.Contains(androidURL, "web-client") {
		t.Errorf("android url should fall back to the web client id: %s", androidURL)
	}
}

func TestBundleFromTokenClampsLapsedExpiry(t *testing.T) {
	token := &oauth2.Token{
		AccessToken: "already-stale",
		Expiry:      time.Now().Add(-time.Minute),
	}

	bundle := bundleFromToken("u1", token)
	if bundle.ExpiresIn != 0 {
		t.Errorf("ExpiresIn = %d, want 0 for a lapsed exchange response", bundle.ExpiresIn)
	}
	if !bundle.IsExpired(time.Now()) {
		t.Error("a lapsed exchange response must be recorded as expired")
	}
}

func TestBundleFromTokenWithoutExpiryUsesFallback(t *testing.T) {
	bundle := bundleFromToken("u1", &oauth2.Token{AccessToken: "tok"})
	if bundle.ExpiresIn != fallbackExpirySeconds {
		t.Errorf("ExpiresIn = %d, want the %ds fallback", bundle.ExpiresIn, fallbackExpirySeconds)
	}
	if bundle.IsExpired(time.Now()) {
		t.Error("fallback bundle should start out valid")
	}
}
