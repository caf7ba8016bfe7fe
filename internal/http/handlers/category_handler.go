package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) Categories(c *fiber.Ctx) error {
	cats := services.Categories(h.Catalog.List(c.UserContext()))
	return c.JSON(fiber.Map{"categories": cats})
}

// Products lists the catalog, optionally narrowed to one category.
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		var ok bool
		if category, ok = validate.Text(category, 40); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return badRequest(c, "invalid category")
		}
	}
	products := services.Filter(h.Catalog.List(c.UserContext()), category, "")
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}
