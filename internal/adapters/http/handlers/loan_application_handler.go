package handlers

import (
	"strconv"

	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/pagination"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanApplicationHandler handles application workflow endpoints
type LoanApplicationHandler struct {
	appService *services.LoanApplicationService
}

// NewLoanApplicationHandler creates a new loan application handler
func NewLoanApplicationHandler(appService *services.LoanApplicationService) *LoanApplicationHandler {
	return &LoanApplicationHandler{appService: appService}
}

func applicationID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// Create handles filing a new application
// @Summary File a loan application
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body services.CreateApplicationInput true "Application data"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications [post]
func (h *LoanApplicationHandler) Create(c *fiber.Ctx) error {
	var req services.CreateApplicationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProductID == 0 {
		return response.BadRequest(c, "Product ID is required")
	}

	application, err := h.appService.CreateApplication(c.UserContext(), middleware.Principal(c), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Application created", application)
}

// Get handles reading one application
// @Summary Get a loan application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id} [get]
func (h *LoanApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.appService.GetApplication(c.UserContext(), middleware.Principal(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Application", application)
}

// ListMine handles listing the caller's applications
// @Summary List my loan applications
// @Tags Applications
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/my [get]
func (h *LoanApplicationHandler) ListMine(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	page, err := h.appService.GetMyApplications(c.UserContext(), middleware.Principal(c), params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Applications", page)
}

// List handles listing all applications for staff review
// @Summary List loan applications
// @Tags Applications
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications [get]
func (h *LoanApplicationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	page, err := h.appService.GetApplications(c.UserContext(), c.Query("status"), params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Applications", page)
}

// Update handles an applicant's revision of an open application
// @Summary Update my loan application
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body services.UpdateApplicationInput true "Update data"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id} [put]
func (h *LoanApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req services.UpdateApplicationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application, err := h.appService.UpdateMyApplication(c.UserContext(), middleware.Principal(c), id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Application updated", application)
}

// Submit handles moving a NEW application into review
// @Summary Submit my loan application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/submit [post]
func (h *LoanApplicationHandler) Submit(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.appService.SubmitApplication(c.UserContext(), middleware.Principal(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Application submitted", application)
}

// UpdateStatus handles the applicant-facing status change
// @Summary Change my loan application's status
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Param status query string true "Target status"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/status [patch]
func (h *LoanApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	status := c.Query("status")
	if status == "" {
		return response.BadRequest(c, "Status is required")
	}

	application, err := h.appService.UpdateStatus(c.UserContext(), middleware.Principal(c), id, status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Application status updated", application)
}

// ManageStatus handles a staff decision
// @Summary Decide on a loan application
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param status query string false "Target status"
// @Param internal_notes query string false "Internal notes"
// @Param body body services.ManageStatusInput false "Decision"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/status/manage [patch]
func (h *LoanApplicationHandler) ManageStatus(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	req := services.ManageStatusInput{
		Status:        c.Query("status"),
		InternalNotes: c.Query("internal_notes"),
	}
	if req.Status == "" {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	application, err := h.appService.UpdateStatusForManage(c.UserContext(), id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Application status updated", application)
}

// RequiredDocuments handles the required-document checklist
// @Summary List required documents for an application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/required-documents [get]
func (h *LoanApplicationHandler) RequiredDocuments(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	statuses, err := h.appService.GetRequiredDocuments(c.UserContext(), middleware.Principal(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Required documents", statuses)
}

// Delete handles application deletion
// @Summary Delete a loan application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id} [delete]
func (h *LoanApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	if err := h.appService.DeleteApplication(c.UserContext(), middleware.Principal(c), id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Application deleted", nil)
}
