package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
	Theme   *services.ThemeService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(c.UserContext(), sessionID(c)))
}

// Page is the server-rendered cart.
func (h *CartHandler) Page(c *fiber.Ctx) error {
	ctx, sid := c.UserContext(), sessionID(c)
	return render(c, "cart", fiber.Map{
		"Cart":  h.Cart.View(ctx, sid),
		"Theme": h.Theme.Get(ctx, sid),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	f, err := formValues(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	raw := f["productId"]
	if raw == "" {
		return badRequest(c, "missing productId")
	}
	id, ok := validate.ID(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return badRequest(c, "invalid productId")
	}
	p, err := h.Catalog.Find(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return notFound(c, "product not found")
	}
	if err != nil {
		return err
	}
	if _, err := h.Cart.Add(c.UserContext(), sessionID(c), p); err != nil {
		return err
	}
	applog.Info(c, "cart.add", map[string]any{"product": id})
	return h.View(c)
}

func (h *CartHandler) Inc(c *fiber.Ctx) error {
	return h.mutate(c, "cart.inc", h.Cart.AddQty)
}

func (h *CartHandler) Dec(c *fiber.Ctx) error {
	return h.mutate(c, "cart.dec", h.Cart.SubQty)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.mutate(c, "cart.remove", h.Cart.Remove)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext(), sessionID(c)); err != nil {
		return err
	}
	applog.Info(c, "cart.clear", nil)
	return h.View(c)
}

type lineOp func(ctx context.Context, sid string, id domain.ProductID) (domain.Cart, error)

func (h *CartHandler) mutate(c *fiber.Ctx, action string, op lineOp) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return badRequest(c, "invalid id")
	}
	if _, err := op(c.UserContext(), sessionID(c), id); err != nil {
		return err
	}
	applog.Info(c, action, map[string]any{"product": id})
	return h.View(c)
}
