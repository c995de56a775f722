package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loanApplicationRepository implements LoanApplicationRepositoryInterface
type loanApplicationRepository struct {
	db *gorm.DB
}

// NewLoanApplicationRepository creates a new loan application repository
func NewLoanApplicationRepository(db *gorm.DB) LoanApplicationRepositoryInterface {
	return &loanApplicationRepository{db: db}
}

func (r *loanApplicationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new loan application
func (r *loanApplicationRepository) Create(ctx context.Context, application *models.LoanApplication) error {
	return r.conn(ctx).Create(application).Error
}

// GetByID gets a loan application by ID with its applicant and product
func (r *loanApplicationRepository) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	var application models.LoanApplication
	err := r.conn(ctx).Preload("User").Preload("Product").Where("id = ?", id).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// GetByIDForUpdate loads the application row with SELECT ... FOR UPDATE so
// concurrent disbursement writers block until the holding transaction
// finishes. Must run inside a unit of work.
func (r *loanApplicationRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.LoanApplication, error) {
	var application models.LoanApplication
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// Update updates a loan application
func (r *loanApplicationRepository) Update(ctx context.Context, application *models.LoanApplication) error {
	return r.conn(ctx).Save(application).Error
}

// Delete deletes a loan application by ID
func (r *loanApplicationRepository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).Delete(&models.LoanApplication{}, id).Error
}

// List lists loan applications, optionally filtered by status
func (r *loanApplicationRepository) List(ctx context.Context, status string, offset, limit int) ([]models.LoanApplication, int64, error) {
	var applications []models.LoanApplication
	var total int64

	db := r.conn(ctx).Model(&models.LoanApplication{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").Preload("Product").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// ListByUserID lists a user's loan applications
func (r *loanApplicationRepository) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.LoanApplication, int64, error) {
	var applications []models.LoanApplication
	var total int64

	db := r.conn(ctx).Model(&models.LoanApplication{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").Preload("Product").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}
