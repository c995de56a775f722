package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// documentRepository implements DocumentRepositoryInterface
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepositoryInterface {
	return &documentRepository{db: db}
}

func (r *documentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new document record
func (r *documentRepository) Create(ctx context.Context, document *models.Document) error {
	return r.conn(ctx).Create(document).Error
}

// GetByID gets a document by ID
func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var document models.Document
	err := r.conn(ctx).Where("id = ?", id).First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// ListByApplicationID lists documents attached to an application
func (r *documentRepository) ListByApplicationID(ctx context.Context, applicationID uint) ([]models.Document, error) {
	var documents []models.Document
	err := r.conn(ctx).
		Where("application_id = ?", applicationID).
		Order("uploaded_at ASC").
		Find(&documents).Error
	return documents, err
}

// Delete deletes a document by ID
func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).Delete(&models.Document{}, id).Error
}
