package middleware

import (
	"strings"

	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/core/services"
	"loanconv-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the fiber locals key for the authenticated caller
const PrincipalKey = "principal"

// AuthMiddleware verifies the bearer token (signature, expiry and the
// revocation list) and stores the resulting principal in locals.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawToken := c.Cookies("access_token")
		if rawToken == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				rawToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if rawToken == "" {
			return response.Unauthenticated(c)
		}

		principal, err := auth.Authenticate(c.UserContext(), rawToken)
		if err != nil {
			return response.Unauthenticated(c)
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// Principal returns the authenticated caller stored by AuthMiddleware
func Principal(c *fiber.Ctx) *domain.Principal {
	principal, _ := c.Locals(PrincipalKey).(*domain.Principal)
	return principal
}

// RequirePermission passes callers holding the named permission or the
// ADMIN role.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if principal == nil {
			return response.Unauthenticated(c)
		}
		if principal.HasPermission(name) || principal.IsAdmin() {
			return c.Next()
		}
		return response.Unauthorized(c)
	}
}

// RequireAdmin passes only callers with the ADMIN role
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if principal == nil {
			return response.Unauthenticated(c)
		}
		if principal.IsAdmin() {
			return c.Next()
		}
		return response.Unauthorized(c)
	}
}
