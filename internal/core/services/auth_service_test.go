package services

import (
	"context"
	"testing"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/config"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SignerKey:          "0123456789abcdef0123456789abcdef",
			AccessTokenSeconds: 3600,
			RefreshSeconds:     36000,
		},
	}
}

func seedUser(t *testing.T, users *fakeUserRepo, email, rawPassword, status string) *models.User {
	t.Helper()
	hashed, err := password.Hash(rawPassword)
	require.NoError(t, err)

	roleName := "ADMIN"
	user := &models.User{
		Email:         email,
		Password:      hashed,
		AccountStatus: status,
		RoleName:      &roleName,
		Role: &models.Role{
			Name: "ADMIN",
			Permissions: []models.Permission{
				{Name: "APPROVE_LOAN"},
			},
		},
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := NewAuthService(users, tokens, testAuthConfig())
	seedUser(t, users, "alice@example.com", "secret1", models.AccountStatusActive)
	ctx := context.Background()

	result, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, result.Authenticated)
	require.NotEmpty(t, result.Token)

	principal, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", principal.Email)
	assert.True(t, principal.IsAdmin())
	assert.True(t, principal.HasPermission("APPROVE_LOAN"))
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeTokenRepo(), testAuthConfig())

	_, err := svc.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUserNotExist)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeTokenRepo(), testAuthConfig())
	seedUser(t, users, "alice@example.com", "secret1", models.AccountStatusActive)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeTokenRepo(), testAuthConfig())
	seedUser(t, users, "alice@example.com", "secret1", models.AccountStatusInactive)

	// Credentials are checked before account status, so the right
	// password on a frozen account reports the inactive error.
	_, err := svc.Login(context.Background(), &LoginInput{Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUserAccountInactive)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_Refresh_SingleUse(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeTokenRepo(), testAuthConfig())
	seedUser(t, users, "alice@example.com", "secret1", models.AccountStatusActive)
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.Token)
	require.NoError(t, err)
	assert.NotEqual(t, login.Token, refreshed.Token)

	// The presented token was revoked by the refresh.
	_, err = svc.Refresh(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// The replacement still works.
	_, err = svc.Authenticate(ctx, refreshed.Token)
	assert.NoError(t, err)
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeTokenRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_Logout(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeTokenRepo(), testAuthConfig())
	seedUser(t, users, "alice@example.com", "secret1", models.AccountStatusActive)
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.Token))

	_, err = svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Logging out again, or with garbage, stays quiet.
	assert.NoError(t, svc.Logout(ctx, login.Token))
	assert.NoError(t, svc.Logout(ctx, "not.a.token"))
}

func TestAuthService_Introspect(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeTokenRepo(), testAuthConfig())
	seedUser(t, users, "alice@example.com", "secret1", models.AccountStatusActive)
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Introspect(ctx, login.Token)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	require.NoError(t, svc.Logout(ctx, login.Token))
	result, err = svc.Introspect(ctx, login.Token)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = svc.Introspect(ctx, "not.a.token")
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
