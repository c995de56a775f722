package handlers

import (
	"time"

	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles portfolio report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ByStatus handles the applications-by-status report
// @Summary Applications by status
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/applications/by-status [get]
func (h *ReportHandler) ByStatus(c *fiber.Ctx) error {
	rows, err := h.reportService.ApplicationsByStatus(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Applications by status", rows)
}

// ByProduct handles the applications-by-product report
// @Summary Applications by product
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/applications/by-product [get]
func (h *ReportHandler) ByProduct(c *fiber.Ctx) error {
	rows, err := h.reportService.ApplicationsByProduct(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Applications by product", rows)
}

// ApprovalRatio handles the approval ratio report
// @Summary Approval ratio
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/approval-ratio [get]
func (h *ReportHandler) ApprovalRatio(c *fiber.Ctx) error {
	ratio, err := h.reportService.GetApprovalRatio(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Approval ratio", ratio)
}

// reportWindow reads the from/to query bounds, defaulting to the trailing
// twelve months
func reportWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)

	if q := c.Query("from"); q != "" {
		parsed, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return from, to, response.BadRequest(c, "Invalid from date")
		}
		from = parsed
	}
	if q := c.Query("to"); q != "" {
		parsed, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return from, to, response.BadRequest(c, "Invalid to date")
		}
		to = parsed
	}
	return from, to, nil
}

// DisbursementsByMonth handles the monthly disbursement report.
// Defaults to the trailing twelve months.
// @Summary Disbursements by month
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (RFC 3339)"
// @Param to query string false "End date (RFC 3339)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/disbursements/by-month [get]
func (h *ReportHandler) DisbursementsByMonth(c *fiber.Ctx) error {
	from, to, err := reportWindow(c)
	if err != nil {
		return err
	}

	rows, err := h.reportService.DisbursementsByMonth(c.UserContext(), from, to)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Disbursements by month", rows)
}

// ApprovedAmountByMonth handles the monthly approved-amount report.
// Defaults to the trailing twelve months.
// @Summary Approved amount by month
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (RFC 3339)"
// @Param to query string false "End date (RFC 3339)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/applications/approved-amount-by-month [get]
func (h *ReportHandler) ApprovedAmountByMonth(c *fiber.Ctx) error {
	from, to, err := reportWindow(c)
	if err != nil {
		return err
	}

	rows, err := h.reportService.ApprovedAmountByMonth(c.UserContext(), from, to)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Approved amount by month", rows)
}

// Dashboard handles the back-office summary
// @Summary Back-office dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.reportService.GetDashboard(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Dashboard", summary)
}
