package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	p, err := h.Catalog.Find(c.UserContext(), id)
	if err != nil {
		return notFound(c, "This item is no longer available")
	}
	return c.JSON(p)
}

// Featured backs the home page strip: featured products, or the first few.
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultFeaturedLimit)
	if limit < 1 || limit > 50 {
		return badRequest(c, "limit must be between 1 and 50")
	}
	products := h.Catalog.Featured(c.UserContext(), limit)
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}
