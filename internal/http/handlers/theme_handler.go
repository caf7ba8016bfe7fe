package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
	"storefront/internal/validate"
)

type ThemeHandler struct {
	Theme *services.ThemeService
}

func (h *ThemeHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"theme": h.Theme.Get(c.UserContext(), sessionID(c))})
}

func (h *ThemeHandler) Toggle(c *fiber.Ctx) error {
	t, err := h.Theme.Toggle(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"theme": t})
}

func (h *ThemeHandler) Set(c *fiber.Ctx) error {
	f, err := formValues(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	t, ok := validate.Theme(f["theme"])
	if !ok {
		return badRequest(c, "theme must be light or dark")
	}
	if err := h.Theme.Set(c.UserContext(), sessionID(c), t); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"theme": t})
}
