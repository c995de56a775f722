package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanProductRepository implements LoanProductRepositoryInterface
type loanProductRepository struct {
	db *gorm.DB
}

// NewLoanProductRepository creates a new loan product repository
func NewLoanProductRepository(db *gorm.DB) LoanProductRepositoryInterface {
	return &loanProductRepository{db: db}
}

func (r *loanProductRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new loan product
func (r *loanProductRepository) Create(ctx context.Context, product *models.LoanProduct) error {
	return r.conn(ctx).Create(product).Error
}

// GetByID gets a loan product by ID
func (r *loanProductRepository) GetByID(ctx context.Context, id uint) (*models.LoanProduct, error) {
	var product models.LoanProduct
	err := r.conn(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update updates a loan product
func (r *loanProductRepository) Update(ctx context.Context, product *models.LoanProduct) error {
	return r.conn(ctx).Save(product).Error
}

// List lists loan products filtered by name substring and status
func (r *loanProductRepository) List(ctx context.Context, name, status string, offset, limit int) ([]models.LoanProduct, int64, error) {
	var products []models.LoanProduct
	var total int64

	db := r.conn(ctx).Model(&models.LoanProduct{})
	if name != "" {
		db = db.Where("name LIKE ?", "%"+name+"%")
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
