package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return c.JSON(fiber.Map{"q": "", "products": []any{}, "count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return badRequest(c, "Enter a valid keyword (letters/numbers only)")
	}
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if category, ok = validate.Text(category, 40); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return badRequest(c, "Invalid category")
		}
	}

	products := services.Filter(h.Catalog.List(c.UserContext()), category, q)
	return c.JSON(fiber.Map{
		"q": q, "category": category,
		"products": products, "count": len(products),
	})
}
