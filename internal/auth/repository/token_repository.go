package repository

import (
	"errors"
	"sync"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"

	"gorm.io/gorm"
)

// gormTokenRepository implements TokenRepository using GORM
type gormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GORM-based TokenRepository
func NewGormTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

func (r *gormTokenRepository) FindByUserID(userID string) (*authdomain.TokenBundle, error) {
	var bundle authdomain.TokenBundle
	err := r.db.Where("user_id = ?", userID).First(&bundle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *gormTokenRepository) Save(bundle *authdomain.TokenBundle) error {
	bundle.UpdatedAt = time.Now()
	// Replace wholesale: the previous bundle for this user is superseded.
	return r.db.Save(bundle).Error
}

func (r *gormTokenRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.TokenBundle{}).Error
}

// memoryTokenRepository keeps bundles in process memory. Used when no
// database is configured and by tests.
type memoryTokenRepository struct {
	mu      sync.RWMutex
	bundles map[string]authdomain.TokenBundle
}

// NewMemoryTokenRepository creates an in-memory TokenRepository
func NewMemoryTokenRepository() TokenRepository {
	return &memoryTokenRepository{bundles: make(map[string]authdomain.TokenBundle)}
}

func (r *memoryTokenRepository) FindByUserID(userID string) (*authdomain.TokenBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bundle, ok := r.bundles[userID]
	if !ok {
		return nil, nil
	}
	copied := bundle
	return &copied, nil
}

func (r *memoryTokenRepository) Save(bundle *authdomain.TokenBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bundle.UpdatedAt = time.Now()
	r.bundles[bundle.UserID] = *bundle
	return nil
}

func (r *memoryTokenRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bundles, userID)
	return nil
}
