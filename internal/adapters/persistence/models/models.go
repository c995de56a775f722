package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Credential Store: users, roles, permissions, revoked tokens
// ============================================================

// Account status values
const (
	AccountStatusActive   = "ACTIVE"
	AccountStatusInactive = "INACTIVE"
)

// User represents the users table. Email is the identity key.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	FullName      string    `gorm:"size:100" json:"full_name"`
	PhoneNumber   string    `gorm:"size:20" json:"phone_number"`
	Address       string    `gorm:"size:255" json:"address"`
	AccountStatus string    `gorm:"size:20;default:'ACTIVE'" json:"account_status"`
	RoleName      *string   `gorm:"size:50;index" json:"role_name"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Role *Role `gorm:"foreignKey:RoleName;references:Name" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.AccountStatus == AccountStatusActive
}

// UserResponse DTO
type UserResponse struct {
	ID            uint          `json:"id"`
	Email         string        `json:"email"`
	FullName      string        `json:"full_name"`
	PhoneNumber   string        `json:"phone_number"`
	Address       string        `json:"address"`
	AccountStatus string        `json:"account_status"`
	Role          *RoleResponse `json:"role,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		PhoneNumber:   u.PhoneNumber,
		Address:       u.Address,
		AccountStatus: u.AccountStatus,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.Role != nil {
		resp.Role = u.Role.ToResponse()
	}
	return resp
}

// Role represents the roles table. Name is the primary key.
type Role struct {
	Name        string       `gorm:"primaryKey;size:50" json:"name"`
	Description string       `gorm:"size:255" json:"description"`
	Permissions []Permission `gorm:"many2many:roles_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleResponse DTO
type RoleResponse struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
}

func (r *Role) ToResponse() *RoleResponse {
	resp := &RoleResponse{
		Name:        r.Name,
		Description: r.Description,
	}
	for _, p := range r.Permissions {
		resp.Permissions = append(resp.Permissions, *p.ToResponse())
	}
	return resp
}

// Permission represents the permissions table
type Permission struct {
	Name        string `gorm:"primaryKey;size:100" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionResponse DTO
type PermissionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p *Permission) ToResponse() *PermissionResponse {
	return &PermissionResponse{
		Name:        p.Name,
		Description: p.Description,
	}
}

// InvalidatedToken records a revoked token jti until its original
// expiration passes, after which the row is safe to purge.
type InvalidatedToken struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ExpirationTime time.Time `gorm:"not null;index" json:"expiration_time"`
}

func (InvalidatedToken) TableName() string {
	return "invalidated_tokens"
}

// Verification token types
const (
	VerificationTokenTypePasswordReset = "PASSWORD_RESET"
)

// VerificationToken is a single-use, short-lived token mailed to a user,
// looked up by its UUID. Verified tokens stay on record but can never be
// redeemed again.
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	UUID      string    `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	TokenType string    `gorm:"size:30;not null" json:"token_type"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}

// SystemConfiguration is a plain key/value store
type SystemConfiguration struct {
	ID          uint      `gorm:"primaryKey;column:config_id" json:"config_id"`
	ConfigKey   string    `gorm:"uniqueIndex;size:100;not null" json:"config_key"`
	ConfigValue string    `gorm:"size:500" json:"config_value"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemConfiguration) TableName() string {
	return "system_configurations"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Permission{},
		&Role{},
		&User{},
		&InvalidatedToken{},
		&VerificationToken{},
		&SystemConfiguration{},
		&LoanProduct{},
		&LoanApplication{},
		&Document{},
		&DisbursementTransaction{},
		&Notification{},
	)
}
