package repositories

import (
	"context"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"
)

// UnitOfWork runs a function with transactional repository access. Every
// repository call made through the context passed to fn shares one
// transaction; returning an error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepositoryInterface defines user data access methods
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
}

// RoleRepositoryInterface defines role data access methods
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *models.Role) error
	GetByName(ctx context.Context, name string) (*models.Role, error)
	ReplacePermissions(ctx context.Context, role *models.Role, permissions []models.Permission) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Role, error)
}

// PermissionRepositoryInterface defines permission data access methods
type PermissionRepositoryInterface interface {
	Create(ctx context.Context, permission *models.Permission) error
	GetByName(ctx context.Context, name string) (*models.Permission, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Permission, error)
}

// InvalidatedTokenRepositoryInterface tracks revoked token identifiers
type InvalidatedTokenRepositoryInterface interface {
	Save(ctx context.Context, token *models.InvalidatedToken) error
	Exists(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// VerificationTokenRepositoryInterface defines verification token data access methods
type VerificationTokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	GetByUUID(ctx context.Context, uuid string) (*models.VerificationToken, error)
	Update(ctx context.Context, token *models.VerificationToken) error
}

// LoanProductRepositoryInterface defines loan product data access methods
type LoanProductRepositoryInterface interface {
	Create(ctx context.Context, product *models.LoanProduct) error
	GetByID(ctx context.Context, id uint) (*models.LoanProduct, error)
	Update(ctx context.Context, product *models.LoanProduct) error
	List(ctx context.Context, name, status string, offset, limit int) ([]models.LoanProduct, int64, error)
}

// LoanApplicationRepositoryInterface defines loan application data access methods
type LoanApplicationRepositoryInterface interface {
	Create(ctx context.Context, application *models.LoanApplication) error
	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)
	// GetByIDForUpdate loads the row under a write lock so concurrent
	// disbursement writers serialize on the application.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.LoanApplication, error)
	Update(ctx context.Context, application *models.LoanApplication) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, status string, offset, limit int) ([]models.LoanApplication, int64, error)
	ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.LoanApplication, int64, error)
}

// DisbursementRepositoryInterface defines disbursement transaction data access methods
type DisbursementRepositoryInterface interface {
	Create(ctx context.Context, tx *models.DisbursementTransaction) error
	GetByID(ctx context.Context, id uint) (*models.DisbursementTransaction, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]models.DisbursementTransaction, int64, error)
	ListByApplicationID(ctx context.Context, applicationID uint) ([]models.DisbursementTransaction, error)
	ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.DisbursementTransaction, int64, error)
	TotalByApplicationID(ctx context.Context, applicationID uint) (int64, error)
}

// DocumentRepositoryInterface defines document data access methods
type DocumentRepositoryInterface interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	ListByApplicationID(ctx context.Context, applicationID uint) ([]models.Document, error)
	Delete(ctx context.Context, id uint) error
}

// NotificationRepositoryInterface defines notification data access methods
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error)
	CountUnreadByUserID(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, notification *models.Notification) error
	Delete(ctx context.Context, id uint) error
	MarkAllReadByUserID(ctx context.Context, userID uint) error
}

// SystemConfigurationRepositoryInterface defines system configuration data access methods
type SystemConfigurationRepositoryInterface interface {
	Create(ctx context.Context, config *models.SystemConfiguration) error
	GetByID(ctx context.Context, id uint) (*models.SystemConfiguration, error)
	GetByKey(ctx context.Context, key string) (*models.SystemConfiguration, error)
	Update(ctx context.Context, config *models.SystemConfiguration) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.SystemConfiguration, error)
}
