package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/pagination"

	"gorm.io/gorm"
)

// DisbursementService handles the disbursement ledger. Every write runs
// inside a unit of work holding a row lock on the parent application, so
// the sum of ledger rows can never exceed the requested amount.
type DisbursementService struct {
	uow      repositories.UnitOfWork
	disbRepo repositories.DisbursementRepositoryInterface
	appRepo  repositories.LoanApplicationRepositoryInterface
	userRepo repositories.UserRepositoryInterface
	notifier *NotificationService
	mailer   EmailSender
}

// NewDisbursementService creates a new disbursement service
func NewDisbursementService(
	uow repositories.UnitOfWork,
	disbRepo repositories.DisbursementRepositoryInterface,
	appRepo repositories.LoanApplicationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	notifier *NotificationService,
	mailer EmailSender,
) *DisbursementService {
	return &DisbursementService{
		uow:      uow,
		disbRepo: disbRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		notifier: notifier,
		mailer:   mailer,
	}
}

// CreateDisbursementInput represents a new ledger entry. Amount is integer
// minor units.
type CreateDisbursementInput struct {
	ApplicationID   uint       `json:"application_id" validate:"required"`
	Amount          int64      `json:"amount" validate:"required"`
	TransactionDate *time.Time `json:"transaction_date"`
	Notes           string     `json:"notes"`
}

// DisbursementSummary is the per-application ledger projection
type DisbursementSummary struct {
	ApplicationID    uint                           `json:"application_id"`
	Status           string                         `json:"status"`
	RequestedAmount  int64                          `json:"requested_amount"`
	TotalDisbursed   int64                          `json:"total_disbursed"`
	Remaining        int64                          `json:"remaining"`
	TransactionCount int                            `json:"transaction_count"`
	IsFullyDisbursed bool                           `json:"is_fully_disbursed"`
	Transactions     []*models.DisbursementResponse `json:"transactions"`
}

// CreateDisbursement records a payout against an approved application.
// The application's denormalized totals and status move in the same
// transaction as the ledger row.
func (s *DisbursementService) CreateDisbursement(ctx context.Context, input *CreateDisbursementInput) (*models.DisbursementResponse, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidDisbursementAmount
	}

	transactionDate := time.Now()
	if input.TransactionDate != nil {
		transactionDate = *input.TransactionDate
	}

	var created *models.DisbursementTransaction
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		application, err := s.appRepo.GetByIDForUpdate(ctx, input.ApplicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanApplicationNotFound
			}
			return err
		}

		if application.Status != models.ApplicationStatusApproved &&
			application.Status != models.ApplicationStatusPartiallyDisbursed {
			return domain.ErrLoanApplicationNotApproved
		}

		total, err := s.disbRepo.TotalByApplicationID(ctx, application.ID)
		if err != nil {
			return err
		}
		newTotal := total + input.Amount
		if newTotal > application.RequestedAmount {
			return domain.ErrDisbursementExceedsCap
		}

		created = &models.DisbursementTransaction{
			ApplicationID:   application.ID,
			Amount:          input.Amount,
			TransactionDate: transactionDate,
			Notes:           input.Notes,
		}
		if err := s.disbRepo.Create(ctx, created); err != nil {
			return err
		}

		application.DisbursedAmount = newTotal
		application.DisbursedDate = &transactionDate
		if newTotal == application.RequestedAmount {
			application.Status = models.ApplicationStatusFullyDisbursed
		} else {
			application.Status = models.ApplicationStatusPartiallyDisbursed
		}
		return s.appRepo.Update(ctx, application)
	})
	if err != nil {
		return nil, err
	}

	s.notifyDisbursement(ctx, created.ApplicationID, created.Amount, transactionDate)

	full, err := s.disbRepo.GetByID(ctx, created.ID)
	if err != nil {
		return created.ToResponse(), nil
	}
	return full.ToResponse(), nil
}

// DeleteDisbursement voids a ledger entry and reclassifies the application
// from whatever remains on the ledger.
func (s *DisbursementService) DeleteDisbursement(ctx context.Context, id uint) error {
	var applicationID uint
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		transaction, err := s.disbRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDisbursementNotFound
			}
			return err
		}
		applicationID = transaction.ApplicationID

		application, err := s.appRepo.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}

		if err := s.disbRepo.Delete(ctx, id); err != nil {
			return err
		}

		total, err := s.disbRepo.TotalByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}

		application.DisbursedAmount = total
		switch {
		case total == 0:
			application.Status = models.ApplicationStatusApproved
			application.DisbursedDate = nil
		case total < application.RequestedAmount:
			application.Status = models.ApplicationStatusPartiallyDisbursed
		default:
			application.Status = models.ApplicationStatusFullyDisbursed
		}
		return s.appRepo.Update(ctx, application)
	})
	if err != nil {
		return err
	}

	s.notifyLedgerChange(ctx, applicationID)
	return nil
}

// notifyDisbursement tells the applicant a payout landed. Fully and
// partially disbursed applications get distinct system notifications, and
// the email carries the payout amount, the running total and the date.
// Best-effort on both channels.
func (s *DisbursementService) notifyDisbursement(ctx context.Context, applicationID uint, amount int64, transactionDate time.Time) {
	application, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		log.Printf("⚠️ Could not load application %d for notification: %v", applicationID, err)
		return
	}

	remaining := application.RequestedAmount - application.DisbursedAmount
	var message string
	if application.Status == models.ApplicationStatusFullyDisbursed {
		message = fmt.Sprintf("Your loan application #%d is fully disbursed", application.ID)
	} else {
		message = fmt.Sprintf("Your loan application #%d received a partial disbursement, remaining %d", application.ID, remaining)
	}

	appID := application.ID
	if err := s.notifier.Notify(ctx, application.UserID, &appID, message, models.NotificationTypeSystem); err != nil {
		log.Printf("⚠️ Failed to create notification for application %d: %v", application.ID, err)
	}

	if application.User != nil {
		subject := fmt.Sprintf("Loan application #%d disbursement", application.ID)
		body := fmt.Sprintf("A disbursement of %d was recorded on %s. Total disbursed: %d of %d requested.",
			amount, transactionDate.Format("2006-01-02"), application.DisbursedAmount, application.RequestedAmount)
		if err := s.mailer.Send(ctx, application.User.Email, subject, body); err != nil {
			log.Printf("⚠️ Failed to email %s: %v", application.User.Email, err)
		}
	}
}

// notifyLedgerChange tells the applicant their application status moved
// after a ledger entry was voided. Best-effort on both channels.
func (s *DisbursementService) notifyLedgerChange(ctx context.Context, applicationID uint) {
	application, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		log.Printf("⚠️ Could not load application %d for notification: %v", applicationID, err)
		return
	}

	message := fmt.Sprintf("Your loan application #%d is now %s", application.ID, application.Status)
	appID := application.ID
	if err := s.notifier.Notify(ctx, application.UserID, &appID, message, models.NotificationTypeStatusUpdate); err != nil {
		log.Printf("⚠️ Failed to create notification for application %d: %v", application.ID, err)
	}

	if application.User != nil {
		subject := fmt.Sprintf("Loan application #%d disbursement update", application.ID)
		if err := s.mailer.Send(ctx, application.User.Email, subject, message); err != nil {
			log.Printf("⚠️ Failed to email %s: %v", application.User.Email, err)
		}
	}
}

// GetDisbursement returns a ledger entry by ID. Non-admin callers may only
// read entries on their own applications.
func (s *DisbursementService) GetDisbursement(ctx context.Context, principal *domain.Principal, id uint) (*models.DisbursementResponse, error) {
	transaction, err := s.disbRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if principal.IsAdmin() {
				return nil, domain.ErrDisbursementNotFound
			}
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !principal.IsAdmin() {
		if err := s.checkOwnership(ctx, principal, transaction.Application); err != nil {
			return nil, err
		}
	}
	return transaction.ToResponse(), nil
}

// GetDisbursements lists all ledger entries. Staff only, enforced at the
// route.
func (s *DisbursementService) GetDisbursements(ctx context.Context, params *pagination.Params) (*pagination.Page, error) {
	transactions, total, err := s.disbRepo.List(ctx, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}
	return disbursementPage(transactions, params, total), nil
}

// GetMyDisbursements lists ledger entries across the caller's applications
func (s *DisbursementService) GetMyDisbursements(ctx context.Context, principal *domain.Principal, params *pagination.Params) (*pagination.Page, error) {
	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	transactions, total, err := s.disbRepo.ListByUserID(ctx, user.ID, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}
	return disbursementPage(transactions, params, total), nil
}

// GetApplicationSummary returns an application's ledger with running
// totals. Non-admin callers may only read their own applications.
func (s *DisbursementService) GetApplicationSummary(ctx context.Context, principal *domain.Principal, applicationID uint) (*DisbursementSummary, error) {
	application, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if principal.IsAdmin() {
				return nil, domain.ErrLoanApplicationNotFound
			}
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !principal.IsAdmin() {
		if err := s.checkOwnership(ctx, principal, application); err != nil {
			return nil, err
		}
	}

	transactions, err := s.disbRepo.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	var total int64
	items := make([]*models.DisbursementResponse, 0, len(transactions))
	for i := range transactions {
		total += transactions[i].Amount
		items = append(items, transactions[i].ToResponse())
	}

	remaining := application.RequestedAmount - total
	return &DisbursementSummary{
		ApplicationID:    application.ID,
		Status:           application.Status,
		RequestedAmount:  application.RequestedAmount,
		TotalDisbursed:   total,
		Remaining:        remaining,
		TransactionCount: len(items),
		IsFullyDisbursed: remaining == 0,
		Transactions:     items,
	}, nil
}

func (s *DisbursementService) checkOwnership(ctx context.Context, principal *domain.Principal, application *models.LoanApplication) error {
	if application == nil {
		return domain.ErrUnauthorized
	}
	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	if application.UserID != user.ID {
		return domain.ErrUnauthorized
	}
	return nil
}

func disbursementPage(transactions []models.DisbursementTransaction, params *pagination.Params, total int64) *pagination.Page {
	items := make([]*models.DisbursementResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, transactions[i].ToResponse())
	}
	return pagination.NewPage(items, params, total)
}
