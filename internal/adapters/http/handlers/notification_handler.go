package handlers

import (
	"strconv"

	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/pagination"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles in-app notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing the caller's notifications
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	page, err := h.notificationService.GetMyNotifications(c.UserContext(), middleware.Principal(c), params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Notifications", page)
}

// UnreadCount handles the unread badge count
// @Summary Count my unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.CountUnread(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Unread count", fiber.Map{"unread": count})
}

// Get handles reading one notification
// @Summary Get a notification
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications/{id} [get]
func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	notification, err := h.notificationService.GetNotification(c.UserContext(), middleware.Principal(c), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Notification", notification)
}

// MarkRead handles marking one notification read
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	notification, err := h.notificationService.MarkRead(c.UserContext(), middleware.Principal(c), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Notification marked read", notification)
}

// Delete handles removing one notification
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.DeleteNotification(c.UserContext(), middleware.Principal(c), uint(id)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Notification deleted", nil)
}

// MarkAllRead handles marking every notification read
// @Summary Mark all my notifications read
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(c.UserContext(), middleware.Principal(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "All notifications marked read", nil)
}
