package repositories

import (
	"context"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// invalidatedTokenRepository implements InvalidatedTokenRepositoryInterface
type invalidatedTokenRepository struct {
	db *gorm.DB
}

// NewInvalidatedTokenRepository creates a new invalidated token repository
func NewInvalidatedTokenRepository(db *gorm.DB) InvalidatedTokenRepositoryInterface {
	return &invalidatedTokenRepository{db: db}
}

func (r *invalidatedTokenRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Save records a revoked token identifier. Revoking the same identifier
// twice is a no-op.
func (r *invalidatedTokenRepository) Save(ctx context.Context, token *models.InvalidatedToken) error {
	return r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(token).Error
}

// Exists checks whether a token identifier has been revoked
func (r *invalidatedTokenRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.InvalidatedToken{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes revocation records whose tokens expired before the
// cutoff and reports how many rows were removed.
func (r *invalidatedTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.conn(ctx).Where("expiration_time < ?", before).Delete(&models.InvalidatedToken{})
	return result.RowsAffected, result.Error
}
