package services

import (
	"context"
	"testing"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *models.User) {
	t.Helper()
	users := newFakeUserRepo()
	notices := newFakeNotificationRepo()
	svc := NewNotificationService(notices, users)

	roleName := "USER"
	user := &models.User{Email: "bob@example.com", AccountStatus: models.AccountStatusActive, RoleName: &roleName}
	require.NoError(t, users.Create(context.Background(), user))
	return svc, user
}

func TestNotificationService_ReadAndUnreadCount(t *testing.T) {
	svc, user := newNotificationFixture(t)
	ctx := context.Background()
	principal := domain.PrincipalFromScope(user.Email, "ROLE_USER", "jti-b")

	require.NoError(t, svc.Notify(ctx, user.ID, nil, "Welcome aboard", models.NotificationTypeSystem))
	require.NoError(t, svc.Notify(ctx, user.ID, nil, "Your loan application #1 is now APPROVED", models.NotificationTypeLoanApproval))

	unread, err := svc.CountUnread(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	page, err := svc.GetMyNotifications(ctx, principal, &pagination.Params{Page: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.Total)

	marked, err := svc.MarkRead(ctx, principal, 1)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	unread, err = svc.CountUnread(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAllRead(ctx, principal))
	unread, err = svc.CountUnread(ctx, principal)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationService_StrictlyPrivate(t *testing.T) {
	users := newFakeUserRepo()
	notices := newFakeNotificationRepo()
	svc := NewNotificationService(notices, users)
	ctx := context.Background()

	userRole, adminRole := "USER", "ADMIN"
	user := &models.User{Email: "bob@example.com", AccountStatus: models.AccountStatusActive, RoleName: &userRole}
	require.NoError(t, users.Create(ctx, user))
	admin := &models.User{Email: "admin@example.com", AccountStatus: models.AccountStatusActive, RoleName: &adminRole}
	require.NoError(t, users.Create(ctx, admin))

	require.NoError(t, svc.Notify(ctx, user.ID, nil, "Private note", models.NotificationTypeSystem))

	// Not even admins may read someone else's notifications.
	_, err := svc.GetNotification(ctx, adminPrincipal(), 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.MarkRead(ctx, adminPrincipal(), 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	principal := domain.PrincipalFromScope(user.Email, "ROLE_USER", "jti-b")
	_, err = svc.GetNotification(ctx, principal, 99)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	// Owners can delete; repeat deletes read as missing.
	err = svc.DeleteNotification(ctx, adminPrincipal(), 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	require.NoError(t, svc.DeleteNotification(ctx, principal, 1))
	assert.ErrorIs(t, svc.DeleteNotification(ctx, principal, 1), domain.ErrNotificationNotFound)
}
