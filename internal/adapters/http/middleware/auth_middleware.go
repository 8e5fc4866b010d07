package middleware

import (
	"fulkoping-rental/internal/config"
	"fulkoping-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// APIKeyAuth validates the X-API-KEY header and stores the caller's role in
// locals. Every route under /api goes through here.
func APIKeyAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-KEY")
		if key == "" {
			return response.Unauthorized(c, "Missing API key")
		}

		role, ok := cfg.RoleForAPIKey(key)
		if !ok {
			return response.Unauthorized(c, "Invalid API key")
		}

		c.Locals("role", role)
		return c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given list
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(config.RoleAdmin)
}
