package services

import (
	"context"
	"errors"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// SystemConfigurationService handles the key/value configuration store
type SystemConfigurationService struct {
	configRepo repositories.SystemConfigurationRepositoryInterface
}

// NewSystemConfigurationService creates a new system configuration service
func NewSystemConfigurationService(configRepo repositories.SystemConfigurationRepositoryInterface) *SystemConfigurationService {
	return &SystemConfigurationService{configRepo: configRepo}
}

// SystemConfigurationInput represents create/update input
type SystemConfigurationInput struct {
	ConfigKey   string `json:"config_key" validate:"required"`
	ConfigValue string `json:"config_value"`
	Description string `json:"description"`
}

// Create creates a configuration entry
func (s *SystemConfigurationService) Create(ctx context.Context, input *SystemConfigurationInput) (*models.SystemConfiguration, error) {
	entry := &models.SystemConfiguration{
		ConfigKey:   input.ConfigKey,
		ConfigValue: input.ConfigValue,
		Description: input.Description,
	}
	if err := s.configRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update replaces an entry's value and description
func (s *SystemConfigurationService) Update(ctx context.Context, id uint, input *SystemConfigurationInput) (*models.SystemConfiguration, error) {
	entry, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.ConfigValue = input.ConfigValue
	if input.Description != "" {
		entry.Description = input.Description
	}
	if err := s.configRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns an entry by ID
func (s *SystemConfigurationService) Get(ctx context.Context, id uint) (*models.SystemConfiguration, error) {
	return s.getByID(ctx, id)
}

// GetByKey returns an entry by its key
func (s *SystemConfigurationService) GetByKey(ctx context.Context, key string) (*models.SystemConfiguration, error) {
	entry, err := s.configRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSystemConfigurationNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List returns every configuration entry
func (s *SystemConfigurationService) List(ctx context.Context) ([]models.SystemConfiguration, error) {
	return s.configRepo.List(ctx)
}

// Delete removes an entry by ID
func (s *SystemConfigurationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}
	return s.configRepo.Delete(ctx, id)
}

func (s *SystemConfigurationService) getByID(ctx context.Context, id uint) (*models.SystemConfiguration, error) {
	entry, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSystemConfigurationNotFound
		}
		return nil, err
	}
	return entry, nil
}
