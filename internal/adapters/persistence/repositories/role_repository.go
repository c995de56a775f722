package repositories

import (
	"context"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// roleRepository implements RoleRepositoryInterface
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepositoryInterface {
	return &roleRepository{db: db}
}

func (r *roleRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new role with its permission assignments
func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	return r.conn(ctx).Create(role).Error
}

// GetByName gets a role by name with its permissions
func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.conn(ctx).Preload("Permissions").Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ReplacePermissions replaces the role's permission set
func (r *roleRepository) ReplacePermissions(ctx context.Context, role *models.Role, permissions []models.Permission) error {
	return r.conn(ctx).Model(role).Association("Permissions").Replace(permissions)
}

// Delete deletes a role by name
func (r *roleRepository) Delete(ctx context.Context, name string) error {
	return r.conn(ctx).Where("name = ?", name).Delete(&models.Role{}).Error
}

// List lists all roles with their permissions
func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.conn(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

// permissionRepository implements PermissionRepositoryInterface
type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) PermissionRepositoryInterface {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) conn(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).WithContext(ctx)
}

// Create creates a new permission
func (r *permissionRepository) Create(ctx context.Context, permission *models.Permission) error {
	return r.conn(ctx).Create(permission).Error
}

// GetByName gets a permission by name
func (r *permissionRepository) GetByName(ctx context.Context, name string) (*models.Permission, error) {
	var permission models.Permission
	err := r.conn(ctx).Where("name = ?", name).First(&permission).Error
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// Delete deletes a permission by name
func (r *permissionRepository) Delete(ctx context.Context, name string) error {
	return r.conn(ctx).Where("name = ?", name).Delete(&models.Permission{}).Error
}

// List lists all permissions
func (r *permissionRepository) List(ctx context.Context) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.conn(ctx).Order("name ASC").Find(&permissions).Error
	return permissions, err
}
