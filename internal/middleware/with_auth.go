package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// Auth role constants used by WithAuth helper.
const (
	AuthRoleAny     = "any"
	AuthRoleAdmin   = "admin"
	AuthRoleStudent = "student"
)

// AuthOptions configures the WithAuth helper.
type AuthOptions struct {
	Role string
}

// WithAuth wraps a single handler with an authentication guard and, unless the role is
// AuthRoleAny, a role check.
func WithAuth(handler fiber.Handler, opts AuthOptions) fiber.Handler {
	role := strings.ToLower(strings.TrimSpace(opts.Role))
	if role == "" {
		role = AuthRoleAny
	}

	return func(c *fiber.Ctx) error {
		if c.Locals(LocalUserID) == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		if role != AuthRoleAny && normalizeRoleValue(c.Locals(LocalUserRole)) != role {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		return handler(c)
	}
}
