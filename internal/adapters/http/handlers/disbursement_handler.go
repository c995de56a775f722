package handlers

import (
	"strconv"

	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/pagination"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DisbursementHandler handles disbursement ledger endpoints
type DisbursementHandler struct {
	disbService *services.DisbursementService
}

// NewDisbursementHandler creates a new disbursement handler
func NewDisbursementHandler(disbService *services.DisbursementService) *DisbursementHandler {
	return &DisbursementHandler{disbService: disbService}
}

// Create handles recording a payout
// @Summary Record a disbursement
// @Tags Disbursements
// @Accept json
// @Produce json
// @Param body body services.CreateDisbursementInput true "Disbursement data"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /disbursements [post]
func (h *DisbursementHandler) Create(c *fiber.Ctx) error {
	var req services.CreateDisbursementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ApplicationID == 0 {
		return response.BadRequest(c, "Application ID is required")
	}

	transaction, err := h.disbService.CreateDisbursement(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Disbursement recorded", transaction)
}

// Delete handles voiding a ledger entry
// @Summary Void a disbursement
// @Tags Disbursements
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /disbursements/{id} [delete]
func (h *DisbursementHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	if err := h.disbService.DeleteDisbursement(c.UserContext(), uint(id)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Disbursement voided", nil)
}

// Get handles reading one ledger entry
// @Summary Get a disbursement
// @Tags Disbursements
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /disbursements/{id} [get]
func (h *DisbursementHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	transaction, err := h.disbService.GetDisbursement(c.UserContext(), middleware.Principal(c), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Disbursement", transaction)
}

// List handles listing all ledger entries
// @Summary List disbursements
// @Tags Disbursements
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /disbursements [get]
func (h *DisbursementHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	page, err := h.disbService.GetDisbursements(c.UserContext(), params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Disbursements", page)
}

// ListMine handles listing the caller's ledger entries
// @Summary List my disbursements
// @Tags Disbursements
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /disbursements/my [get]
func (h *DisbursementHandler) ListMine(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	page, err := h.disbService.GetMyDisbursements(c.UserContext(), middleware.Principal(c), params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Disbursements", page)
}

// ApplicationSummary handles the per-application ledger projection
// @Summary Get an application's disbursement summary
// @Tags Disbursements
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/disbursements [get]
func (h *DisbursementHandler) ApplicationSummary(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	summary, err := h.disbService.GetApplicationSummary(c.UserContext(), middleware.Principal(c), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Disbursement summary", summary)
}
