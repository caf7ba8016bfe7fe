package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

// AttachUser puts the session user into Locals when one is signed in.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u, ok := auth.Current(c.UserContext(), sessionID(c)); ok {
			c.Locals("user", u)
		}
		return c.Next()
	}
}

// RequireLogin rejects requests whose session holds no identity.
func RequireLogin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := auth.Current(c.UserContext(), sessionID(c))
		if !ok {
			applog.Security(c, "access.denied.account", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
