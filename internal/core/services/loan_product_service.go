package services

import (
	"context"
	"errors"
	"strings"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/pagination"

	"gorm.io/gorm"
)

// LoanProductService handles the loan product catalog
type LoanProductService struct {
	productRepo repositories.LoanProductRepositoryInterface
}

// NewLoanProductService creates a new loan product service
func NewLoanProductService(productRepo repositories.LoanProductRepositoryInterface) *LoanProductService {
	return &LoanProductService{productRepo: productRepo}
}

// LoanProductInput represents product create/update input. Amounts are
// integer minor units, terms are months.
type LoanProductInput struct {
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description"`
	InterestRate      float64 `json:"interest_rate"`
	MinAmount         int64   `json:"min_amount"`
	MaxAmount         int64   `json:"max_amount"`
	MinTerm           int     `json:"min_term"`
	MaxTerm           int     `json:"max_term"`
	RequiredDocuments string  `json:"required_documents"`
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Name   string
	Status string
}

func validateProductInput(input *LoanProductInput) error {
	if len(strings.TrimSpace(input.Name)) < 3 {
		return domain.ErrInvalidProductName
	}
	if input.MinAmount <= 0 || input.MaxAmount <= 0 || input.MinAmount > input.MaxAmount {
		return domain.ErrInvalidProductAmountRange
	}
	if input.MinTerm <= 0 || input.MaxTerm <= 0 || input.MinTerm > input.MaxTerm {
		return domain.ErrInvalidProductTermRange
	}
	if input.InterestRate <= 0 || input.InterestRate > 100 {
		return domain.ErrInvalidProductInterestRate
	}
	if strings.TrimSpace(input.RequiredDocuments) == "" {
		return domain.ErrInvalidProductDocuments
	}
	return nil
}

// CreateProduct creates a loan product. New products start ACTIVE.
func (s *LoanProductService) CreateProduct(ctx context.Context, input *LoanProductInput) (*models.LoanProductResponse, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &models.LoanProduct{
		Name:              input.Name,
		Description:       input.Description,
		InterestRate:      input.InterestRate,
		MinAmount:         input.MinAmount,
		MaxAmount:         input.MaxAmount,
		MinTerm:           input.MinTerm,
		MaxTerm:           input.MaxTerm,
		Status:            models.LoanProductStatusActive,
		RequiredDocuments: strings.Join(strings.Fields(input.RequiredDocuments), " "),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product.ToResponse(), nil
}

// UpdateProduct replaces a product's attributes
func (s *LoanProductService) UpdateProduct(ctx context.Context, id uint, input *LoanProductInput) (*models.LoanProductResponse, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.InterestRate = input.InterestRate
	product.MinAmount = input.MinAmount
	product.MaxAmount = input.MaxAmount
	product.MinTerm = input.MinTerm
	product.MaxTerm = input.MaxTerm
	product.RequiredDocuments = strings.Join(strings.Fields(input.RequiredDocuments), " ")

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product.ToResponse(), nil
}

// ChangeProductStatus activates or retires a product. Retired products
// stay attached to their existing applications.
func (s *LoanProductService) ChangeProductStatus(ctx context.Context, id uint, status string) (*models.LoanProductResponse, error) {
	if status != models.LoanProductStatusActive && status != models.LoanProductStatusInactive {
		return nil, domain.ErrInvalidStatus
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Status = status
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product.ToResponse(), nil
}

// GetProduct returns a product by ID
func (s *LoanProductService) GetProduct(ctx context.Context, id uint) (*models.LoanProductResponse, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return product.ToResponse(), nil
}

// GetProducts lists products with optional name and status filters
func (s *LoanProductService) GetProducts(ctx context.Context, filter *ProductFilter, params *pagination.Params) (*pagination.Page, error) {
	products, total, err := s.productRepo.List(ctx, filter.Name, filter.Status, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LoanProductResponse, 0, len(products))
	for i := range products {
		items = append(items, products[i].ToResponse())
	}
	return pagination.NewPage(items, params, total), nil
}

func (s *LoanProductService) getProduct(ctx context.Context, id uint) (*models.LoanProduct, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanProductNotFound
		}
		return nil, err
	}
	return product, nil
}
