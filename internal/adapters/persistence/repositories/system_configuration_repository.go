package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// systemConfigurationRepository implements SystemConfigurationRepositoryInterface
type systemConfigurationRepository struct {
	db *gorm.DB
}

// NewSystemConfigurationRepository creates a new system configuration repository
func NewSystemConfigurationRepository(db *gorm.DB) SystemConfigurationRepositoryInterface {
	return &systemConfigurationRepository{db: db}
}

func (r *systemConfigurationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new system configuration entry
func (r *systemConfigurationRepository) Create(ctx context.Context, config *models.SystemConfiguration) error {
	return r.conn(ctx).Create(config).Error
}

// GetByID gets a configuration entry by ID
func (r *systemConfigurationRepository) GetByID(ctx context.Context, id uint) (*models.SystemConfiguration, error) {
	var config models.SystemConfiguration
	err := r.conn(ctx).Where("config_id = ?", id).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// GetByKey gets a configuration entry by its key
func (r *systemConfigurationRepository) GetByKey(ctx context.Context, key string) (*models.SystemConfiguration, error) {
	var config models.SystemConfiguration
	err := r.conn(ctx).Where("config_key = ?", key).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Update updates a configuration entry
func (r *systemConfigurationRepository) Update(ctx context.Context, config *models.SystemConfiguration) error {
	return r.conn(ctx).Save(config).Error
}

// Delete deletes a configuration entry by ID
func (r *systemConfigurationRepository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).Where("config_id = ?", id).Delete(&models.SystemConfiguration{}).Error
}

// List lists all configuration entries
func (r *systemConfigurationRepository) List(ctx context.Context) ([]models.SystemConfiguration, error) {
	var configs []models.SystemConfiguration
	err := r.conn(ctx).Order("config_key ASC").Find(&configs).Error
	return configs, err
}
