package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

// AdminHandler manages the shared catalog. Like the rest of the mock
// storefront it has no access control.
type AdminHandler struct {
	Catalog *services.CatalogService
}

// draftFrom reads and validates the product form. field names the first
// bad input.
func draftFrom(c *fiber.Ctx) (services.ProductDraft, string, error) {
	f, err := formValues(c)
	if err != nil {
		return services.ProductDraft{}, "", err
	}
	d := services.DraftFromRecord(f)
	var ok bool
	if d.Name, ok = validate.Name(d.Name); !ok {
		return d, "name", nil
	}
	if d.Category, ok = validate.Text(d.Category, 40); !ok {
		return d, "category", nil
	}
	if d.Price, ok = validate.Price(d.Price); !ok {
		return d, "price", nil
	}
	if d.Rating, ok = validate.Rating(d.Rating); !ok {
		return d, "rating", nil
	}
	if d.Image, ok = validate.ImageURL(d.Image); !ok {
		return d, "image", nil
	}
	return d, "", nil
}

// GET /api/v1/admin/products
func (h *AdminHandler) List(c *fiber.Ctx) error {
	list, err := h.Catalog.AdminList(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"products": list, "count": len(list)})
}

// POST /api/v1/admin/products
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	d, field, err := draftFrom(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	if field != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return badRequest(c, "invalid "+field)
	}
	p, err := h.Catalog.Create(c.UserContext(), d)
	if err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return err
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/admin/products/:id
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	d, field, err := draftFrom(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	if field != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return badRequest(c, "invalid "+field)
	}
	p, err := h.Catalog.Update(c.UserContext(), id, d)
	if errors.Is(err, services.ErrProductNotFound) {
		return notFound(c, "product not found")
	}
	if err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return err
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.JSON(p)
}

// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	err := h.Catalog.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return notFound(c, "product not found")
	}
	if err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return err
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/admin/products/reset
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	list, err := h.Catalog.Reset(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.products.reset.fail", err, nil)
		return err
	}
	applog.Audit(c, "admin.products.reset", map[string]any{"count": len(list)})
	return c.JSON(fiber.Map{"products": list, "count": len(list)})
}
