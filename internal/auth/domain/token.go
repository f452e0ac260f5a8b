package domain

import "time"

// expirySkew is the safety margin against clock drift and requests already
// in flight when the token is about to lapse.
const expirySkew = 60 * time.Second

// TokenBundle is the Google OAuth credential set stored per user. It is
// replaced wholesale on every successful consent exchange or refresh.
type TokenBundle struct {
	UserID       string    `json:"user_id" gorm:"primaryKey"`
	AccessToken  string    `json:"access_token" gorm:"not null"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int64     `json:"expires_in"` // seconds of validity from issuance
	IssuedAt     time.Time `json:"issued_at"`
	Scope        string    `json:"scope,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsExpired reports whether the access token is no longer usable at now.
// A token expires at issuedAt + expiresIn - skew; the boundary instant
// counts as expired.
func (t *TokenBundle) IsExpired(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return true
	}
	deadline := t.IssuedAt.Add(time.Duration(t.ExpiresIn)*time.Second - expirySkew)
	return !now.Before(deadline)
}
