package handlers

import (
	"strconv"

	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SystemConfigurationHandler handles configuration store endpoints
type SystemConfigurationHandler struct {
	configService *services.SystemConfigurationService
}

// NewSystemConfigurationHandler creates a new system configuration handler
func NewSystemConfigurationHandler(configService *services.SystemConfigurationService) *SystemConfigurationHandler {
	return &SystemConfigurationHandler{configService: configService}
}

// Create handles entry creation
// @Summary Create a configuration entry
// @Tags Configuration
// @Accept json
// @Produce json
// @Param body body services.SystemConfigurationInput true "Configuration data"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /system-configurations [post]
func (h *SystemConfigurationHandler) Create(c *fiber.Ctx) error {
	var req services.SystemConfigurationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ConfigKey == "" {
		return response.BadRequest(c, "Config key is required")
	}

	entry, err := h.configService.Create(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Configuration created", entry)
}

// Update handles entry updates
// @Summary Update a configuration entry
// @Tags Configuration
// @Accept json
// @Produce json
// @Param id path int true "Config ID"
// @Param body body services.SystemConfigurationInput true "Configuration data"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /system-configurations/{id} [put]
func (h *SystemConfigurationHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid config ID")
	}

	var req services.SystemConfigurationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.configService.Update(c.UserContext(), uint(id), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Configuration updated", entry)
}

// List handles listing all entries
// @Summary List configuration entries
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /system-configurations [get]
func (h *SystemConfigurationHandler) List(c *fiber.Ctx) error {
	entries, err := h.configService.List(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Configurations", entries)
}

// Get handles reading one entry by ID
// @Summary Get a configuration entry
// @Tags Configuration
// @Produce json
// @Param id path int true "Config ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /system-configurations/{id} [get]
func (h *SystemConfigurationHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid config ID")
	}

	entry, err := h.configService.Get(c.UserContext(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Configuration", entry)
}

// GetByKey handles reading one entry by key. Public so clients can read
// display settings before login.
// @Summary Get a configuration entry by key
// @Tags Configuration
// @Produce json
// @Param key path string true "Config key"
// @Success 200 {object} response.Envelope
// @Router /system-configurations/key/{key} [get]
func (h *SystemConfigurationHandler) GetByKey(c *fiber.Ctx) error {
	entry, err := h.configService.GetByKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Configuration", entry)
}

// Delete handles entry deletion
// @Summary Delete a configuration entry
// @Tags Configuration
// @Produce json
// @Param id path int true "Config ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /system-configurations/{id} [delete]
func (h *SystemConfigurationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid config ID")
	}

	if err := h.configService.Delete(c.UserContext(), uint(id)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Configuration deleted", nil)
}
