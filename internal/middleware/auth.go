package middleware

import (
	"strings"

	"streamhub-backend/internal/services"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth.
const (
	LocalsAccountID   = "account_id"
	LocalsRole        = "role"
	LocalsProfileID   = "profile_id"
	LocalsProfileName = "profile_name"
)

// RequireAuth validates the Bearer access token and stores the caller's
// identity in Locals for downstream handlers.
func RequireAuth(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(LocalsAccountID, claims.AccountID)
		c.Locals(LocalsRole, claims.Role)
		if claims.ProfileID != 0 {
			c.Locals(LocalsProfileID, claims.ProfileID)
			c.Locals(LocalsProfileName, claims.ProfileName)
		}
		return c.Next()
	}
}

// RequireRole guards a route group behind a role claim. Must run after
// RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(LocalsRole) != role {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}

// AccountID returns the authenticated account id from Locals.
func AccountID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalsAccountID).(uint); ok {
		return id
	}
	return 0
}
