package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"usercontacts/internal/model"
)

// TokenBlacklistRepository persists revoked tokens.
type TokenBlacklistRepository interface {
	Create(ctx context.Context, entry *model.TokenBlacklist) error
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type tokenBlacklistRepository struct {
	db *gorm.DB
}

// NewTokenBlacklistRepository creates a new blacklist repository.
func NewTokenBlacklistRepository(db *gorm.DB) TokenBlacklistRepository {
	return &tokenBlacklistRepository{db: db}
}

func (r *tokenBlacklistRepository) Create(ctx context.Context, entry *model.TokenBlacklist) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *tokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TokenBlacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired removes entries whose token expired before the given time.
func (r *tokenBlacklistRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before.Unix()).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
