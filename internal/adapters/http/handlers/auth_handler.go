package handlers

import (
	"strings"

	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.PasswordResetService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, resetService *services.PasswordResetService) *AuthHandler {
	return &AuthHandler{authService: authService, resetService: resetService}
}

// Login handles token issuance
// @Summary Log in
// @Description Authenticate by email and password and issue a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/token [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Authenticated", result)
}

// Refresh handles token refresh
// @Summary Refresh a token
// @Description Exchange a token inside its refresh window for a fresh one
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.TokenInput true "Token"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req services.TokenInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Token == "" {
		return response.BadRequest(c, "Token is required")
	}

	result, err := h.authService.Refresh(c.UserContext(), req.Token)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Token refreshed", result)
}

// Logout handles token revocation
// @Summary Log out
// @Description Revoke the presented token; unusable tokens are ignored
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.TokenInput true "Token"
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req services.TokenInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(c.UserContext(), req.Token); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Logged out", nil)
}

// Introspect handles token introspection
// @Summary Introspect a token
// @Description Report whether a token is currently usable
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.TokenInput true "Token"
// @Success 200 {object} response.Envelope
// @Router /auth/introspect [post]
func (h *AuthHandler) Introspect(c *fiber.Ctx) error {
	var req services.TokenInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Introspect(c.UserContext(), req.Token)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Token introspected", result)
}

// SendPasswordResetEmail mails a reset token
// @Summary Request a password reset
// @Description Mail a single-use reset token to the account's address
// @Tags Auth
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/password-reset/email/{email} [post]
func (h *AuthHandler) SendPasswordResetEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.resetService.SendResetEmail(c.UserContext(), email); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Password reset email sent", nil)
}

// ValidatePasswordResetToken pre-validates a mailed token
// @Summary Validate a password reset token
// @Description Check a reset token without consuming it
// @Tags Auth
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/password-reset/token/{token} [post]
func (h *AuthHandler) ValidatePasswordResetToken(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "Token is required")
	}

	if err := h.resetService.ValidateResetToken(c.UserContext(), token); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Token is valid", nil)
}

// ResetPassword exchanges a valid token for a new password
// @Summary Reset a password
// @Description Set a new password using a mailed reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.ResetPasswordInput true "Reset request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/password-reset [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req services.ResetPasswordInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Token == "" {
		return response.BadRequest(c, "Token is required")
	}
	if req.NewPassword == "" {
		return response.BadRequest(c, "New password is required")
	}

	if err := h.resetService.ResetPassword(c.UserContext(), &req); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Password has been reset", nil)
}
