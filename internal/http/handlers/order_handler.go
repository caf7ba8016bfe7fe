package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

// contactFrom validates the checkout form. field names the first bad input.
func contactFrom(f map[string]string) (ct domain.Contact, field string) {
	var ok bool
	if ct.FirstName, ok = validate.Name(f["first_name"]); !ok {
		return ct, "first_name"
	}
	if ct.LastName, ok = validate.Name(f["last_name"]); !ok {
		return ct, "last_name"
	}
	if ct.Email, ok = validate.Email(f["email"]); !ok {
		return ct, "email"
	}
	if ct.Phone, ok = validate.Phone(f["phone"]); !ok {
		return ct, "phone"
	}
	if ct.Address, ok = validate.Text(f["address"], 120); !ok {
		return ct, "address"
	}
	if ct.City, ok = validate.Text(f["city"], 60); !ok {
		return ct, "city"
	}
	if ct.State, ok = validate.Text(f["state"], 40); !ok {
		return ct, "state"
	}
	if ct.ZIP, ok = validate.ZIP(f["zip"]); !ok {
		return ct, "zip"
	}
	return ct, ""
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	f, err := formValues(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	contact, field := contactFrom(f)
	if field != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return badRequest(c, "invalid "+field)
	}

	rec, err := h.Order.Place(c.UserContext(), sessionID(c), contact)
	if errors.Is(err, services.ErrCartEmpty) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Your cart is empty"})
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": rec.ID,
		"total":    rec.Totals.Total,
		"items":    len(rec.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// History lists the receipts placed from this browser session.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders := h.Order.History(c.UserContext(), sessionID(c))
	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}
