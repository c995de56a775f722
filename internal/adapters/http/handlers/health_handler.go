package handlers

import (
	"loanconv-backoffice/internal/config"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles the service banner
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "LoanConv back office API", fiber.Map{
		"service": "loanconv-backoffice",
		"docs":    "/swagger/index.html",
	})
}

// Check handles health check
// @Summary Health check
// @Description Reports service and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "ok",
	}
	if err := config.HealthCheck(); err != nil {
		status["database"] = "down"
	}
	return response.Success(c, "Service health", status)
}
