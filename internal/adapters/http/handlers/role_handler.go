package handlers

import (
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler handles role and permission management endpoints
type RoleHandler struct {
	roleService *services.RoleService
	permService *services.PermissionService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *services.RoleService, permService *services.PermissionService) *RoleHandler {
	return &RoleHandler{roleService: roleService, permService: permService}
}

// CreateRole handles role creation
// @Summary Create a role
// @Tags Roles
// @Accept json
// @Produce json
// @Param body body services.RoleInput true "Role data"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req services.RoleInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Role name is required")
	}

	role, err := h.roleService.CreateRole(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Role created", role)
}

// UpdateRole handles role updates
// @Summary Update a role's permissions
// @Tags Roles
// @Accept json
// @Produce json
// @Param name path string true "Role name"
// @Param body body services.RoleInput true "Role data"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /roles/{name} [put]
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	var req services.RoleInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	role, err := h.roleService.UpdateRole(c.UserContext(), c.Params("name"), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Role updated", role)
}

// ListRoles handles role listing
// @Summary List roles
// @Tags Roles
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roleService.GetRoles(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Roles", roles)
}

// DeleteRole handles role deletion
// @Summary Delete a role
// @Tags Roles
// @Produce json
// @Param name path string true "Role name"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /roles/{name} [delete]
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	if err := h.roleService.DeleteRole(c.UserContext(), c.Params("name")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Role deleted", nil)
}

// CreatePermission handles permission creation
// @Summary Create a permission
// @Tags Permissions
// @Accept json
// @Produce json
// @Param body body services.PermissionInput true "Permission data"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /permissions [post]
func (h *RoleHandler) CreatePermission(c *fiber.Ctx) error {
	var req services.PermissionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Permission name is required")
	}

	permission, err := h.permService.CreatePermission(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Permission created", permission)
}

// ListPermissions handles permission listing
// @Summary List permissions
// @Tags Permissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /permissions [get]
func (h *RoleHandler) ListPermissions(c *fiber.Ctx) error {
	permissions, err := h.permService.GetPermissions(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Permissions", permissions)
}

// DeletePermission handles permission deletion
// @Summary Delete a permission
// @Tags Permissions
// @Produce json
// @Param name path string true "Permission name"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /permissions/{name} [delete]
func (h *RoleHandler) DeletePermission(c *fiber.Ctx) error {
	if err := h.permService.DeletePermission(c.UserContext(), c.Params("name")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Permission deleted", nil)
}
