package services

import (
	"context"
	"errors"
	"net/mail"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/pagination"
	"loanconv-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user account business logic
type UserService struct {
	userRepo repositories.UserRepositoryInterface
	roleRepo repositories.RoleRepositoryInterface
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo}
}

// CreateUserInput represents registration input
type CreateUserInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UpdateUserInput represents profile update input. Role and account status
// changes only take effect for admin callers.
type UpdateUserInput struct {
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	Role          string `json:"role"`
	AccountStatus string `json:"account_status"`
}

// CreateUser registers a new user with the default USER role
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	roleName := domain.RoleUser
	user := &models.User{
		Email:         input.Email,
		Password:      hashed,
		FullName:      input.FullName,
		PhoneNumber:   input.PhoneNumber,
		Address:       input.Address,
		AccountStatus: models.AccountStatusActive,
		RoleName:      &roleName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Reload so the role and its permissions come back populated
	created, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

// GetUsers lists users with pagination. Admin only, enforced at the route.
func (s *UserService) GetUsers(ctx context.Context, params *pagination.Params) (*pagination.Page, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, users[i].ToResponse())
	}
	return pagination.NewPage(items, params, total), nil
}

// GetUser returns a user by ID. Non-admin callers may only read themselves.
func (s *UserService) GetUser(ctx context.Context, principal *domain.Principal, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotExist
		}
		return nil, err
	}

	if !principal.IsAdmin() && user.Email != principal.Email {
		return nil, domain.ErrUnauthorized
	}
	return user.ToResponse(), nil
}

// GetMyInfo returns the calling user's own profile
func (s *UserService) GetMyInfo(ctx context.Context, principal *domain.Principal) (*models.UserResponse, error) {
	user, err := s.resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUser updates a user. Non-admin callers may only update themselves,
// and cannot change role or account status.
func (s *UserService) UpdateUser(ctx context.Context, principal *domain.Principal, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotExist
		}
		return nil, err
	}

	if !principal.IsAdmin() && user.Email != principal.Email {
		return nil, domain.ErrUnauthorized
	}

	if input.Password != "" {
		if !password.Validate(input.Password) {
			return nil, domain.ErrInvalidPassword
		}
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Address != "" {
		user.Address = input.Address
	}

	if principal.IsAdmin() {
		if input.Role != "" {
			if _, err := s.roleRepo.GetByName(ctx, input.Role); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, domain.ErrRoleNotExist
				}
				return nil, err
			}
			role := input.Role
			user.RoleName = &role
		}
		if input.AccountStatus != "" {
			if input.AccountStatus != models.AccountStatusActive && input.AccountStatus != models.AccountStatusInactive {
				return nil, domain.ErrInvalidStatus
			}
			user.AccountStatus = input.AccountStatus
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// DeleteUser removes a user account. Admin only, enforced at the route.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotExist
		}
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// resolve loads the user record behind a principal
func (s *UserService) resolve(ctx context.Context, principal *domain.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotExist
		}
		return nil, err
	}
	return user, nil
}
