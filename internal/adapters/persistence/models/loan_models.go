package models

import "time"

// ============================================================
// Loan Catalog
// ============================================================

// Loan product status values
const (
	LoanProductStatusActive   = "ACTIVE"
	LoanProductStatusInactive = "INACTIVE"
)

// LoanProduct represents the loan_products table. Amounts are integer
// minor units; terms are months. RequiredDocuments is a whitespace-
// delimited list of document-type keys.
type LoanProduct struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null;index" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	InterestRate      float64   `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	MinAmount         int64     `gorm:"not null" json:"min_amount"`
	MaxAmount         int64     `gorm:"not null" json:"max_amount"`
	MinTerm           int       `gorm:"not null" json:"min_term"`
	MaxTerm           int       `gorm:"not null" json:"max_term"`
	Status            string    `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	RequiredDocuments string    `gorm:"size:500;not null" json:"required_documents"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanProduct) TableName() string {
	return "loan_products"
}

// LoanProductResponse DTO
type LoanProductResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	InterestRate      float64   `json:"interest_rate"`
	MinAmount         int64     `json:"min_amount"`
	MaxAmount         int64     `json:"max_amount"`
	MinTerm           int       `json:"min_term"`
	MaxTerm           int       `json:"max_term"`
	Status            string    `json:"status"`
	RequiredDocuments string    `json:"required_documents"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *LoanProduct) ToResponse() *LoanProductResponse {
	return &LoanProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		InterestRate:      p.InterestRate,
		MinAmount:         p.MinAmount,
		MaxAmount:         p.MaxAmount,
		MinTerm:           p.MinTerm,
		MaxTerm:           p.MaxTerm,
		Status:            p.Status,
		RequiredDocuments: p.RequiredDocuments,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ============================================================
// Loan Application Workflow
// ============================================================

// Loan application status values. REJECTED is terminal; FULLY_DISBURSED
// only changes through disbursement deletion.
const (
	ApplicationStatusNew                = "NEW"
	ApplicationStatusPending            = "PENDING"
	ApplicationStatusRequireMoreInfo    = "REQUIRE_MORE_INFO"
	ApplicationStatusApproved           = "APPROVED"
	ApplicationStatusRejected           = "REJECTED"
	ApplicationStatusPartiallyDisbursed = "PARTIALLY_DISBURSED"
	ApplicationStatusFullyDisbursed     = "FULLY_DISBURSED"
)

// ValidApplicationStatus reports whether s names a known workflow status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusPending, ApplicationStatusRequireMoreInfo,
		ApplicationStatusApproved, ApplicationStatusRejected,
		ApplicationStatusPartiallyDisbursed, ApplicationStatusFullyDisbursed:
		return true
	}
	return false
}

// LoanApplication represents the loan_applications table.
// DisbursedAmount/DisbursedDate are denormalized convenience fields
// maintained by the disbursement ledger.
type LoanApplication struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	ProductID       uint       `gorm:"not null;index" json:"product_id"`
	RequestedAmount int64      `gorm:"not null" json:"requested_amount"`
	RequestedTerm   int        `gorm:"not null" json:"requested_term"`
	PersonalInfo    string     `gorm:"type:text" json:"personal_info"`
	Status          string     `gorm:"size:30;default:'NEW';index" json:"status"`
	DisbursedAmount int64      `gorm:"default:0" json:"disbursed_amount"`
	DisbursedDate   *time.Time `json:"disbursed_date"`
	InternalNotes   string     `gorm:"type:text" json:"internal_notes"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User    *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *LoanProduct `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}

// LoanApplicationResponse DTO
type LoanApplicationResponse struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	UserEmail       string     `json:"user_email,omitempty"`
	ProductID       uint       `json:"product_id"`
	ProductName     string     `json:"product_name,omitempty"`
	RequestedAmount int64      `json:"requested_amount"`
	RequestedTerm   int        `json:"requested_term"`
	PersonalInfo    string     `json:"personal_info"`
	Status          string     `json:"status"`
	DisbursedAmount int64      `json:"disbursed_amount"`
	DisbursedDate   *time.Time `json:"disbursed_date"`
	InternalNotes   string     `json:"internal_notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (a *LoanApplication) ToResponse() *LoanApplicationResponse {
	resp := &LoanApplicationResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		ProductID:       a.ProductID,
		RequestedAmount: a.RequestedAmount,
		RequestedTerm:   a.RequestedTerm,
		PersonalInfo:    a.PersonalInfo,
		Status:          a.Status,
		DisbursedAmount: a.DisbursedAmount,
		DisbursedDate:   a.DisbursedDate,
		InternalNotes:   a.InternalNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.User != nil {
		resp.UserEmail = a.User.Email
	}
	if a.Product != nil {
		resp.ProductName = a.Product.Name
	}
	return resp
}

// Document represents the documents table. FileName is the name presented
// by the uploader; StoredName is the UUID-prefixed name on disk.
type Document struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	DocumentType  string    `gorm:"size:100;not null" json:"document_type"`
	FileName      string    `gorm:"size:255;not null" json:"file_name"`
	StoredName    string    `gorm:"size:255;not null" json:"-"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Application *LoanApplication `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentResponse DTO
type DocumentResponse struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	DocumentType  string    `json:"document_type"`
	FileName      string    `json:"file_name"`
	URL           string    `json:"url,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

func (d *Document) ToResponse(urlPrefix string) *DocumentResponse {
	resp := &DocumentResponse{
		ID:            d.ID,
		ApplicationID: d.ApplicationID,
		DocumentType:  d.DocumentType,
		FileName:      d.FileName,
		UploadedAt:    d.UploadedAt,
	}
	if urlPrefix != "" && d.StoredName != "" {
		resp.URL = urlPrefix + "/" + d.StoredName
	}
	return resp
}

// ============================================================
// Disbursement Ledger
// ============================================================

// DisbursementTransaction represents the disbursement_transactions table.
// Rows are append-only; deletion triggers application reclassification.
// Amount is integer minor units.
type DisbursementTransaction struct {
	ID              uint      `gorm:"primaryKey;column:transaction_id" json:"transaction_id"`
	ApplicationID   uint      `gorm:"not null;index" json:"application_id"`
	Amount          int64     `gorm:"not null" json:"amount"`
	TransactionDate time.Time `gorm:"not null" json:"transaction_date"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Application *LoanApplication `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (DisbursementTransaction) TableName() string {
	return "disbursement_transactions"
}

// DisbursementApplicationInfo is the nested application projection on a
// disbursement response.
type DisbursementApplicationInfo struct {
	ID              uint   `json:"id"`
	Status          string `json:"status"`
	RequestedAmount int64  `json:"requested_amount"`
	UserID          uint   `json:"user_id,omitempty"`
	UserEmail       string `json:"user_email,omitempty"`
	ProductID       uint   `json:"product_id,omitempty"`
	ProductName     string `json:"product_name,omitempty"`
}

// DisbursementResponse DTO
type DisbursementResponse struct {
	TransactionID   uint                         `json:"transaction_id"`
	ApplicationID   uint                         `json:"application_id"`
	Amount          int64                        `json:"amount"`
	TransactionDate time.Time                    `json:"transaction_date"`
	Notes           string                       `json:"notes"`
	CreatedAt       time.Time                    `json:"created_at"`
	Application     *DisbursementApplicationInfo `json:"loan_application,omitempty"`
}

func (t *DisbursementTransaction) ToResponse() *DisbursementResponse {
	resp := &DisbursementResponse{
		TransactionID:   t.ID,
		ApplicationID:   t.ApplicationID,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
	if t.Application != nil {
		info := &DisbursementApplicationInfo{
			ID:              t.Application.ID,
			Status:          t.Application.Status,
			RequestedAmount: t.Application.RequestedAmount,
			UserID:          t.Application.UserID,
			ProductID:       t.Application.ProductID,
		}
		if t.Application.User != nil {
			info.UserEmail = t.Application.User.Email
		}
		if t.Application.Product != nil {
			info.ProductName = t.Application.Product.Name
		}
		resp.Application = info
	}
	return resp
}

// ============================================================
// Notifications
// ============================================================

// Notification type values
const (
	NotificationTypeSystem        = "SYSTEM"
	NotificationTypeLoanApproval  = "LOAN_APPROVAL"
	NotificationTypeLoanRejection = "LOAN_REJECTION"
	NotificationTypeStatusUpdate  = "APPLICATION_STATUS_UPDATE"
)

// Notification represents the notifications table
type Notification struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	ApplicationID    *uint     `gorm:"index" json:"application_id"`
	Message          string    `gorm:"size:500;not null" json:"message"`
	NotificationType string    `gorm:"size:50;default:'SYSTEM'" json:"notification_type"`
	IsRead           bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	User        *User            `gorm:"foreignKey:UserID" json:"-"`
	Application *LoanApplication `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse DTO
type NotificationResponse struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	ApplicationID    *uint     `json:"application_id"`
	Message          string    `json:"message"`
	NotificationType string    `json:"notification_type"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:               n.ID,
		UserID:           n.UserID,
		ApplicationID:    n.ApplicationID,
		Message:          n.Message,
		NotificationType: n.NotificationType,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}
