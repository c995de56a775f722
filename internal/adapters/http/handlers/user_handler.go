package handlers

import (
	"strconv"
	"strings"

	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/pagination"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user account endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles user registration
// @Summary Register a user
// @Description Create a user account with the default USER role
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "Registration data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req services.CreateUserInput
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

	user, err := h.userService.CreateUser(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "User created", user)
}

// List handles user listing
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	page, err := h.userService.GetUsers(c.UserContext(), params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Users", page)
}

// Get handles reading one user
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.UserContext(), middleware.Principal(c), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User", user)
}

// Me handles reading the caller's own profile
// @Summary Get my profile
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetMyInfo(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Profile", user)
}

// Update handles profile updates
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Update data"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req services.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.UserContext(), middleware.Principal(c), uint(id), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User updated", user)
}

// Delete handles user deletion
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.UserContext(), uint(id)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User deleted", nil)
}
