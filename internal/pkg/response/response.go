package response

import (
	"errors"
	"log"

	"loanconv-backoffice/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the standard API response shape. Code 1000 means success;
// any other value is a domain error code. Clients distinguish failures by
// Code, never by HTTP status alone.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a success envelope
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{
		Code:    domain.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Created sends a success envelope with HTTP 201
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Code:    domain.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error maps a domain failure to the envelope. Unmapped errors are
// logged with their full context, then downgraded to the uncategorized
// code so internals never leak.
func Error(c *fiber.Ctx, err error) error {
	appErr := domain.AsAppError(err)
	if appErr == domain.ErrUncategorized && !errors.Is(err, domain.ErrUncategorized) {
		log.Printf("❌ Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(appErr.HTTPStatus).JSON(Envelope{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// Unauthenticated sends the 401-class envelope
func Unauthenticated(c *fiber.Ctx) error {
	return Error(c, domain.ErrUnauthenticated)
}

// Unauthorized sends the 403-class envelope
func Unauthorized(c *fiber.Ctx) error {
	return Error(c, domain.ErrUnauthorized)
}

// BadRequest sends a one-off 400 envelope for request-shape failures that
// have no dedicated domain code.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Code:    1111,
		Message: message,
	})
}
