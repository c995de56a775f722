package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// disbursementRepository implements DisbursementRepositoryInterface
type disbursementRepository struct {
	db *gorm.DB
}

// NewDisbursementRepository creates a new disbursement repository
func NewDisbursementRepository(db *gorm.DB) DisbursementRepositoryInterface {
	return &disbursementRepository{db: db}
}

func (r *disbursementRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new disbursement transaction
func (r *disbursementRepository) Create(ctx context.Context, tx *models.DisbursementTransaction) error {
	return r.conn(ctx).Create(tx).Error
}

// GetByID gets a disbursement transaction by ID with its application
func (r *disbursementRepository) GetByID(ctx context.Context, id uint) (*models.DisbursementTransaction, error) {
	var tx models.DisbursementTransaction
	err := r.conn(ctx).
		Preload("Application.User").
		Preload("Application.Product").
		Where("transaction_id = ?", id).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Delete deletes a disbursement transaction by ID
func (r *disbursementRepository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).Where("transaction_id = ?", id).Delete(&models.DisbursementTransaction{}).Error
}

// List lists disbursement transactions with pagination
func (r *disbursementRepository) List(ctx context.Context, offset, limit int) ([]models.DisbursementTransaction, int64, error) {
	var txs []models.DisbursementTransaction
	var total int64

	db := r.conn(ctx).Model(&models.DisbursementTransaction{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Application.User").Preload("Application.Product").
		Order("transaction_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// ListByApplicationID lists all transactions recorded against an application
func (r *disbursementRepository) ListByApplicationID(ctx context.Context, applicationID uint) ([]models.DisbursementTransaction, error) {
	var txs []models.DisbursementTransaction
	err := r.conn(ctx).
		Where("application_id = ?", applicationID).
		Order("transaction_date ASC").
		Find(&txs).Error
	return txs, err
}

// ListByUserID lists transactions belonging to a user's applications
func (r *disbursementRepository) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.DisbursementTransaction, int64, error) {
	var txs []models.DisbursementTransaction
	var total int64

	db := r.conn(ctx).Model(&models.DisbursementTransaction{}).
		Joins("JOIN loan_applications ON loan_applications.id = disbursement_transactions.application_id").
		Where("loan_applications.user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Application.User").Preload("Application.Product").
		Order("transaction_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// TotalByApplicationID sums the amounts disbursed against an application
func (r *disbursementRepository) TotalByApplicationID(ctx context.Context, applicationID uint) (int64, error) {
	var total int64
	err := r.conn(ctx).Model(&models.DisbursementTransaction{}).
		Where("application_id = ?", applicationID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
