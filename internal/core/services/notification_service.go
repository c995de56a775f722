package services

import (
	"context"
	"errors"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/pagination"

	"gorm.io/gorm"
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

// Notify records a notification for a user. Callers on write paths treat
// failures as non-fatal.
func (s *NotificationService) Notify(ctx context.Context, userID uint, applicationID *uint, message, notificationType string) error {
	notification := &models.Notification{
		UserID:           userID,
		ApplicationID:    applicationID,
		Message:          message,
		NotificationType: notificationType,
	}
	return s.notificationRepo.Create(ctx, notification)
}

// GetMyNotifications lists the caller's notifications, newest first
func (s *NotificationService) GetMyNotifications(ctx context.Context, principal *domain.Principal, params *pagination.Params) (*pagination.Page, error) {
	user, err := s.resolve(ctx, principal)
	if err != nil {
		return nil, err
	}

	notifications, total, err := s.notificationRepo.ListByUserID(ctx, user.ID, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, notifications[i].ToResponse())
	}
	return pagination.NewPage(items, params, total), nil
}

// CountUnread returns the caller's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, principal *domain.Principal) (int64, error) {
	user, err := s.resolve(ctx, principal)
	if err != nil {
		return 0, err
	}
	return s.notificationRepo.CountUnreadByUserID(ctx, user.ID)
}

// GetNotification returns one of the caller's notifications by ID
func (s *NotificationService) GetNotification(ctx context.Context, principal *domain.Principal, id uint) (*models.NotificationResponse, error) {
	notification, err := s.owned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return notification.ToResponse(), nil
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, principal *domain.Principal, id uint) (*models.NotificationResponse, error) {
	notification, err := s.owned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := s.notificationRepo.Update(ctx, notification); err != nil {
			return nil, err
		}
	}
	return notification.ToResponse(), nil
}

// DeleteNotification removes one of the caller's notifications
func (s *NotificationService) DeleteNotification(ctx context.Context, principal *domain.Principal, id uint) error {
	notification, err := s.owned(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, notification.ID)
}

// MarkAllRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, principal *domain.Principal) error {
	user, err := s.resolve(ctx, principal)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkAllReadByUserID(ctx, user.ID)
}

// owned loads a notification and verifies the caller owns it. Notifications
// are strictly private, admins included.
func (s *NotificationService) owned(ctx context.Context, principal *domain.Principal, id uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}

	user, err := s.resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	if notification.UserID != user.ID {
		return nil, domain.ErrUnauthorized
	}
	return notification, nil
}

func (s *NotificationService) resolve(ctx context.Context, principal *domain.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
