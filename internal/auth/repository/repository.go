package repository

import authdomain "focusplan-backend/internal/auth/domain"

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
}

// TokenRepository is the token store strategy. Implementations are selected
// once at startup: Postgres when a database is configured, in-memory
// otherwise.
type TokenRepository interface {
	FindByUserID(userID string) (*authdomain.TokenBundle, error)
	Save(bundle *authdomain.TokenBundle) error
	DeleteByUserID(userID string) error
}
