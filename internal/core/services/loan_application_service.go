package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/pagination"

	"gorm.io/gorm"
)

// LoanApplicationService handles the application workflow
type LoanApplicationService struct {
	appRepo      repositories.LoanApplicationRepositoryInterface
	productRepo  repositories.LoanProductRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	documentRepo repositories.DocumentRepositoryInterface
	notifier     *NotificationService
	mailer       EmailSender
}

// NewLoanApplicationService creates a new loan application service
func NewLoanApplicationService(
	appRepo repositories.LoanApplicationRepositoryInterface,
	productRepo repositories.LoanProductRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	documentRepo repositories.DocumentRepositoryInterface,
	notifier *NotificationService,
	mailer EmailSender,
) *LoanApplicationService {
	return &LoanApplicationService{
		appRepo:      appRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		documentRepo: documentRepo,
		notifier:     notifier,
		mailer:       mailer,
	}
}

// CreateApplicationInput represents a new application
type CreateApplicationInput struct {
	ProductID       uint   `json:"product_id" validate:"required"`
	RequestedAmount int64  `json:"requested_amount" validate:"required"`
	RequestedTerm   int    `json:"requested_term" validate:"required"`
	PersonalInfo    string `json:"personal_info" validate:"required"`
}

// UpdateApplicationInput represents an applicant's revision of an open
// application
type UpdateApplicationInput struct {
	RequestedAmount int64  `json:"requested_amount"`
	RequestedTerm   int    `json:"requested_term"`
	PersonalInfo    string `json:"personal_info"`
}

// ManageStatusInput represents a staff status decision
type ManageStatusInput struct {
	Status        string `json:"status" validate:"required"`
	InternalNotes string `json:"internal_notes"`
}

// RequiredDocumentStatus reports one required document type and the name
// of the uploaded file, nil while the applicant has not provided it
type RequiredDocumentStatus struct {
	DocumentType string  `json:"document_type"`
	FileName     *string `json:"file_name"`
}

// CreateApplication files a new application for the calling user. New
// applications start in NEW.
func (s *LoanApplicationService) CreateApplication(ctx context.Context, principal *domain.Principal, input *CreateApplicationInput) (*models.LoanApplicationResponse, error) {
	user, err := s.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanProductNotFound
		}
		return nil, err
	}
	if product.Status != models.LoanProductStatusActive {
		return nil, domain.ErrLoanProductNotFound
	}

	if err := validateAgainstProduct(product, input.RequestedAmount, input.RequestedTerm, input.PersonalInfo); err != nil {
		return nil, err
	}

	application := &models.LoanApplication{
		UserID:          user.ID,
		ProductID:       product.ID,
		RequestedAmount: input.RequestedAmount,
		RequestedTerm:   input.RequestedTerm,
		PersonalInfo:    input.PersonalInfo,
		Status:          models.ApplicationStatusNew,
	}
	if err := s.appRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	created, err := s.appRepo.GetByID(ctx, application.ID)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

func validateAgainstProduct(product *models.LoanProduct, amount int64, term int, personalInfo string) error {
	if amount < product.MinAmount || amount > product.MaxAmount {
		return domain.ErrInvalidApplicationAmount
	}
	if term < product.MinTerm || term > product.MaxTerm {
		return domain.ErrInvalidApplicationTerm
	}
	if strings.TrimSpace(personalInfo) == "" {
		return domain.ErrInvalidApplicationPersonalInfo
	}
	return nil
}

// GetApplication returns an application by ID. Non-admin callers may only
// read their own.
func (s *LoanApplicationService) GetApplication(ctx context.Context, principal *domain.Principal, id uint) (*models.LoanApplicationResponse, error) {
	application, err := s.ownedOrAdmin(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return application.ToResponse(), nil
}

// GetMyApplications lists the caller's applications
func (s *LoanApplicationService) GetMyApplications(ctx context.Context, principal *domain.Principal, params *pagination.Params) (*pagination.Page, error) {
	user, err := s.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	applications, total, err := s.appRepo.ListByUserID(ctx, user.ID, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}
	return applicationPage(applications, params, total), nil
}

// GetApplications lists all applications, optionally filtered by status.
// Staff only, enforced at the route.
func (s *LoanApplicationService) GetApplications(ctx context.Context, status string, params *pagination.Params) (*pagination.Page, error) {
	if status != "" && !models.ValidApplicationStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	applications, total, err := s.appRepo.List(ctx, status, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}
	return applicationPage(applications, params, total), nil
}

// UpdateMyApplication lets the applicant revise an open application. Only
// NEW and REQUIRE_MORE_INFO applications are editable; resubmitting after
// REQUIRE_MORE_INFO moves the application back to PENDING.
func (s *LoanApplicationService) UpdateMyApplication(ctx context.Context, principal *domain.Principal, id uint, input *UpdateApplicationInput) (*models.LoanApplicationResponse, error) {
	application, err := s.ownedOrAdmin(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if application.Status != models.ApplicationStatusNew && application.Status != models.ApplicationStatusRequireMoreInfo {
		return nil, domain.ErrInvalidStatus
	}

	product, err := s.productRepo.GetByID(ctx, application.ProductID)
	if err != nil {
		return nil, err
	}

	if input.RequestedAmount != 0 {
		application.RequestedAmount = input.RequestedAmount
	}
	if input.RequestedTerm != 0 {
		application.RequestedTerm = input.RequestedTerm
	}
	if input.PersonalInfo != "" {
		application.PersonalInfo = input.PersonalInfo
	}

	if err := validateAgainstProduct(product, application.RequestedAmount, application.RequestedTerm, application.PersonalInfo); err != nil {
		return nil, err
	}

	if application.Status == models.ApplicationStatusRequireMoreInfo {
		application.Status = models.ApplicationStatusPending
	}

	if err := s.appRepo.Update(ctx, application); err != nil {
		return nil, err
	}
	return application.ToResponse(), nil
}

// SubmitApplication moves the applicant's NEW application into PENDING
// review
func (s *LoanApplicationService) SubmitApplication(ctx context.Context, principal *domain.Principal, id uint) (*models.LoanApplicationResponse, error) {
	application, err := s.ownedOrAdmin(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if application.Status != models.ApplicationStatusNew {
		return nil, domain.ErrInvalidStatus
	}

	application.Status = models.ApplicationStatusPending
	if err := s.appRepo.Update(ctx, application); err != nil {
		return nil, err
	}
	return application.ToResponse(), nil
}

// UpdateStatus moves an application to a new status through the simple
// applicant-facing path. Rejection is terminal: once REJECTED, no further
// change goes through here, re-rejection included.
func (s *LoanApplicationService) UpdateStatus(ctx context.Context, principal *domain.Principal, id uint, status string) (*models.LoanApplicationResponse, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if status == models.ApplicationStatusPartiallyDisbursed || status == models.ApplicationStatusFullyDisbursed {
		return nil, domain.ErrInvalidStatus
	}

	application, err := s.ownedOrAdmin(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if application.Status == models.ApplicationStatusRejected {
		return nil, domain.ErrLoanApplicationAlreadyRejected
	}

	application.Status = status
	if err := s.appRepo.Update(ctx, application); err != nil {
		return nil, err
	}
	return application.ToResponse(), nil
}

// UpdateStatusForManage applies a staff decision to an application.
// REJECTED is terminal; the disbursement statuses only change through the
// ledger.
func (s *LoanApplicationService) UpdateStatusForManage(ctx context.Context, id uint, input *ManageStatusInput) (*models.LoanApplicationResponse, error) {
	if !models.ValidApplicationStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if input.Status == models.ApplicationStatusPartiallyDisbursed || input.Status == models.ApplicationStatusFullyDisbursed {
		return nil, domain.ErrInvalidStatus
	}

	application, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanApplicationNotFound
		}
		return nil, err
	}

	if application.Status == models.ApplicationStatusRejected {
		return nil, domain.ErrLoanApplicationAlreadyRejected
	}

	application.Status = input.Status
	if input.InternalNotes != "" {
		application.InternalNotes = input.InternalNotes
	}

	if err := s.appRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, application)
	return application.ToResponse(), nil
}

// notifyStatusChange records an in-app notification and emails the
// applicant. Both are best-effort.
func (s *LoanApplicationService) notifyStatusChange(ctx context.Context, application *models.LoanApplication) {
	notificationType := models.NotificationTypeSystem
	switch application.Status {
	case models.ApplicationStatusApproved:
		notificationType = models.NotificationTypeLoanApproval
	case models.ApplicationStatusRejected:
		notificationType = models.NotificationTypeLoanRejection
	}

	message := fmt.Sprintf("Your loan application #%d is now %s", application.ID, application.Status)
	appID := application.ID
	if err := s.notifier.Notify(ctx, application.UserID, &appID, message, notificationType); err != nil {
		log.Printf("⚠️ Failed to create notification for application %d: %v", application.ID, err)
	}

	if application.User != nil {
		subject := fmt.Sprintf("Loan application #%d update", application.ID)
		if err := s.mailer.Send(ctx, application.User.Email, subject, message); err != nil {
			log.Printf("⚠️ Failed to email %s: %v", application.User.Email, err)
		}
	}
}

// GetRequiredDocuments overlays the product's required document types with
// the documents uploaded so far
func (s *LoanApplicationService) GetRequiredDocuments(ctx context.Context, principal *domain.Principal, id uint) ([]RequiredDocumentStatus, error) {
	application, err := s.ownedOrAdmin(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, application.ProductID)
	if err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.ListByApplicationID(ctx, application.ID)
	if err != nil {
		return nil, err
	}

	uploaded := make(map[string]string, len(documents))
	for i := range documents {
		uploaded[documents[i].DocumentType] = documents[i].FileName
	}

	types := strings.Fields(product.RequiredDocuments)
	statuses := make([]RequiredDocumentStatus, 0, len(types))
	for _, t := range types {
		status := RequiredDocumentStatus{DocumentType: t}
		if name, ok := uploaded[t]; ok {
			status.FileName = &name
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// DeleteApplication removes an application. Applicants may only delete
// their own NEW applications; admins may delete any.
func (s *LoanApplicationService) DeleteApplication(ctx context.Context, principal *domain.Principal, id uint) error {
	application, err := s.ownedOrAdmin(ctx, principal, id)
	if err != nil {
		return err
	}

	if !principal.IsAdmin() && application.Status != models.ApplicationStatusNew {
		return domain.ErrInvalidStatus
	}
	return s.appRepo.Delete(ctx, id)
}

// ownedOrAdmin loads an application and verifies the caller owns it or is
// an admin. For non-admin callers every resolution failure, a missing row
// included, reads as missing permission so existence never leaks.
func (s *LoanApplicationService) ownedOrAdmin(ctx context.Context, principal *domain.Principal, id uint) (*models.LoanApplication, error) {
	application, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if principal.IsAdmin() {
				return nil, domain.ErrLoanApplicationNotFound
			}
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if principal.IsAdmin() {
		return application, nil
	}

	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if application.UserID != user.ID {
		return nil, domain.ErrUnauthorized
	}
	return application, nil
}

func (s *LoanApplicationService) resolveUser(ctx context.Context, principal *domain.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func applicationPage(applications []models.LoanApplication, params *pagination.Params, total int64) *pagination.Page {
	items := make([]*models.LoanApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, applications[i].ToResponse())
	}
	return pagination.NewPage(items, params, total)
}
