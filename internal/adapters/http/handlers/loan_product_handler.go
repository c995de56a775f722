package handlers

import (
	"strconv"

	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/pagination"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanProductHandler handles loan product catalog endpoints
type LoanProductHandler struct {
	productService *services.LoanProductService
}

// NewLoanProductHandler creates a new loan product handler
func NewLoanProductHandler(productService *services.LoanProductService) *LoanProductHandler {
	return &LoanProductHandler{productService: productService}
}

// Create handles product creation
// @Summary Create a loan product
// @Tags Products
// @Accept json
// @Produce json
// @Param body body services.LoanProductInput true "Product data"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-products [post]
func (h *LoanProductHandler) Create(c *fiber.Ctx) error {
	var req services.LoanProductInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Product created", product)
}

// Update handles product updates
// @Summary Update a loan product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body services.LoanProductInput true "Product data"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-products/{id} [put]
func (h *LoanProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req services.LoanProductInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.UpdateProduct(c.UserContext(), uint(id), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Product updated", product)
}

// ChangeStatus handles product activation and retirement
// @Summary Change a product's status
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-products/{id}/status [patch]
func (h *LoanProductHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.ChangeProductStatus(c.UserContext(), uint(id), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Product status changed", product)
}

// Get handles reading one product
// @Summary Get a loan product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Envelope
// @Router /loan-products/{id} [get]
func (h *LoanProductHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productService.GetProduct(c.UserContext(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Product", product)
}

// List handles product listing
// @Summary List loan products
// @Tags Products
// @Produce json
// @Param name query string false "Name filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /loan-products [get]
func (h *LoanProductHandler) List(c *fiber.Ctx) error {
	filter := &services.ProductFilter{
		Name:   c.Query("name"),
		Status: c.Query("status"),
	}
	params := pagination.GetParams(c)

	page, err := h.productService.GetProducts(c.UserContext(), filter, params)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Products", page)
}
