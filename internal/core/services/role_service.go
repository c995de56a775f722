package services

import (
	"context"
	"errors"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// RoleService handles role management
type RoleService struct {
	roleRepo repositories.RoleRepositoryInterface
	permRepo repositories.PermissionRepositoryInterface
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo repositories.RoleRepositoryInterface,
	permRepo repositories.PermissionRepositoryInterface,
) *RoleService {
	return &RoleService{roleRepo: roleRepo, permRepo: permRepo}
}

// RoleInput represents role create/update input
type RoleInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// CreateRole creates a role with the named permissions. Permission names
// that do not exist are rejected.
func (s *RoleService) CreateRole(ctx context.Context, input *RoleInput) (*models.RoleResponse, error) {
	permissions, err := s.resolvePermissions(ctx, input.Permissions)
	if err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        input.Name,
		Description: input.Description,
		Permissions: permissions,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role.ToResponse(), nil
}

// UpdateRole replaces a role's description and permission set
func (s *RoleService) UpdateRole(ctx context.Context, name string, input *RoleInput) (*models.RoleResponse, error) {
	role, err := s.roleRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotExist
		}
		return nil, err
	}

	permissions, err := s.resolvePermissions(ctx, input.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.ReplacePermissions(ctx, role, permissions); err != nil {
		return nil, err
	}

	updated, err := s.roleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// GetRoles lists all roles
func (s *RoleService) GetRoles(ctx context.Context) ([]*models.RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*models.RoleResponse, 0, len(roles))
	for i := range roles {
		items = append(items, roles[i].ToResponse())
	}
	return items, nil
}

// DeleteRole removes a role by name
func (s *RoleService) DeleteRole(ctx context.Context, name string) error {
	if _, err := s.roleRepo.GetByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRoleNotExist
		}
		return err
	}
	return s.roleRepo.Delete(ctx, name)
}

func (s *RoleService) resolvePermissions(ctx context.Context, names []string) ([]models.Permission, error) {
	permissions := make([]models.Permission, 0, len(names))
	for _, name := range names {
		p, err := s.permRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrPermissionNotExist
			}
			return nil, err
		}
		permissions = append(permissions, *p)
	}
	return permissions, nil
}

// PermissionService handles permission management
type PermissionService struct {
	permRepo repositories.PermissionRepositoryInterface
}

// NewPermissionService creates a new permission service
func NewPermissionService(permRepo repositories.PermissionRepositoryInterface) *PermissionService {
	return &PermissionService{permRepo: permRepo}
}

// PermissionInput represents permission create input
type PermissionInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreatePermission creates a permission
func (s *PermissionService) CreatePermission(ctx context.Context, input *PermissionInput) (*models.PermissionResponse, error) {
	permission := &models.Permission{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.permRepo.Create(ctx, permission); err != nil {
		return nil, err
	}
	return permission.ToResponse(), nil
}

// GetPermissions lists all permissions
func (s *PermissionService) GetPermissions(ctx context.Context) ([]*models.PermissionResponse, error) {
	permissions, err := s.permRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*models.PermissionResponse, 0, len(permissions))
	for i := range permissions {
		items = append(items, permissions[i].ToResponse())
	}
	return items, nil
}

// DeletePermission removes a permission by name
func (s *PermissionService) DeletePermission(ctx context.Context, name string) error {
	if _, err := s.permRepo.GetByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPermissionNotExist
		}
		return err
	}
	return s.permRepo.Delete(ctx, name)
}
