package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// verificationTokenRepository implements VerificationTokenRepositoryInterface
type verificationTokenRepository struct {
	db *gorm.DB
}

// NewVerificationTokenRepository creates a new verification token repository
func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepositoryInterface {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create stores a new verification token
func (r *verificationTokenRepository) Create(ctx context.Context, token *models.VerificationToken) error {
	return r.conn(ctx).Create(token).Error
}

// GetByUUID loads a token by its mailed identifier
func (r *verificationTokenRepository) GetByUUID(ctx context.Context, uuid string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := r.conn(ctx).Where("uuid = ?", uuid).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Update saves token mutations, typically marking it verified
func (r *verificationTokenRepository) Update(ctx context.Context, token *models.VerificationToken) error {
	return r.conn(ctx).Save(token).Error
}
