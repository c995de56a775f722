package handlers

import (
	"strconv"

	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles application document endpoints
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles a multipart document upload
// @Summary Upload a document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Application ID"
// @Param document_type formData string true "Document type key"
// @Param file formData file true "Document file"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	documentType := c.FormValue("document_type")
	if documentType == "" {
		return response.BadRequest(c, "Document type is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	document, err := h.documentService.Upload(c.UserContext(), middleware.Principal(c), uint(id), documentType, file)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Document uploaded", document)
}

// List handles listing an application's documents
// @Summary List an application's documents
// @Tags Documents
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /loan-applications/{id}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	documents, err := h.documentService.List(c.UserContext(), middleware.Principal(c), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Documents", documents)
}

// Delete handles document deletion
// @Summary Delete a document
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	if err := h.documentService.Delete(c.UserContext(), middleware.Principal(c), uint(id)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Document deleted", nil)
}
