package services

import (
	"context"
	"testing"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *fakeUserRepo, *fakeRoleRepo) {
	t.Helper()
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	require.NoError(t, roles.Create(context.Background(), &models.Role{Name: domain.RoleUser}))
	require.NoError(t, roles.Create(context.Background(), &models.Role{Name: domain.RoleAdmin}))
	return NewUserService(users, roles), users, roles
}

func TestUserService_CreateUser(t *testing.T) {
	svc, _, _ := newUserService(t)

	created, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, models.AccountStatusActive, created.AccountStatus)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{Email: "not-an-email", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserService_GetUser_SelfOrAdmin(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	alice, err := svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	self := domain.PrincipalFromScope("alice@example.com", "ROLE_USER", "jti-a")
	_, err = svc.GetUser(ctx, self, alice.ID)
	assert.NoError(t, err)

	stranger := domain.PrincipalFromScope("eve@example.com", "ROLE_USER", "jti-e")
	_, err = svc.GetUser(ctx, stranger, alice.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.GetUser(ctx, adminPrincipal(), alice.ID)
	assert.NoError(t, err)

	_, err = svc.GetUser(ctx, adminPrincipal(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotExist)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()

	alice, err := svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	self := domain.PrincipalFromScope("alice@example.com", "ROLE_USER", "jti-a")

	updated, err := svc.UpdateUser(ctx, self, alice.ID, &UpdateUserInput{
		FullName: "Alice Cooper",
		Password: "newsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.FullName)

	stored, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("newsecret", stored.Password))
}

func TestUserService_UpdateUser_RoleAndStatusAdminOnly(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()

	alice, err := svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	self := domain.PrincipalFromScope("alice@example.com", "ROLE_USER", "jti-a")

	// Non-admin attempts to escalate are silently ignored.
	_, err = svc.UpdateUser(ctx, self, alice.ID, &UpdateUserInput{Role: domain.RoleAdmin, AccountStatus: models.AccountStatusInactive})
	require.NoError(t, err)
	stored, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, *stored.RoleName)
	assert.Equal(t, models.AccountStatusActive, stored.AccountStatus)

	// Admins can change both.
	_, err = svc.UpdateUser(ctx, adminPrincipal(), alice.ID, &UpdateUserInput{Role: domain.RoleAdmin, AccountStatus: models.AccountStatusInactive})
	require.NoError(t, err)
	stored, err = users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, *stored.RoleName)
	assert.Equal(t, models.AccountStatusInactive, stored.AccountStatus)

	// But only to roles and statuses that exist.
	_, err = svc.UpdateUser(ctx, adminPrincipal(), alice.ID, &UpdateUserInput{Role: "SUPERVISOR"})
	assert.ErrorIs(t, err, domain.ErrRoleNotExist)
	_, err = svc.UpdateUser(ctx, adminPrincipal(), alice.ID, &UpdateUserInput{AccountStatus: "FROZEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	alice, err := svc.CreateUser(ctx, &CreateUserInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, alice.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, alice.ID), domain.ErrUserNotExist)
}
