package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "storefront/internal/log"
)

// Register mounts the session middleware and every route. Global
// middleware (request id, access log, helmet, rate limit) is left to the
// caller.
func Register(app *fiber.App, d *Deps) {
	app.Use(Session())
	app.Use(AttachUser(d.Auth))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/cart", d.CartHandler.Page)
	app.Get("/events", d.EventsHandler.Stream)

	api := app.Group("/api/v1")

	// Catalog
	api.Get("/products", d.CategoryHandler.Products)
	api.Get("/products/featured", d.ProductHandler.Featured)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/categories", d.CategoryHandler.Categories)
	api.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), d.SearchHandler.Search)

	// Cart & Orders
	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Delete("/cart", d.CartHandler.Clear)
	api.Post("/cart/:id/inc", d.CartHandler.Inc)
	api.Post("/cart/:id/dec", d.CartHandler.Dec)
	api.Delete("/cart/:id", d.CartHandler.Remove)
	api.Post("/checkout", d.OrderHandler.Checkout)
	api.Get("/orders", d.OrderHandler.History)

	// Account (login throttled)
	api.Post("/account/register", d.AuthHandler.Register)
	api.Post("/account/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	api.Post("/account/logout", d.AuthHandler.Logout)
	api.Get("/account/me", RequireLogin(d.Auth), d.AuthHandler.Me)
	api.Put("/account/me", RequireLogin(d.Auth), d.AuthHandler.UpdateMe)

	// Theme
	api.Get("/theme", d.ThemeHandler.Get)
	api.Put("/theme", d.ThemeHandler.Set)
	api.Post("/theme/toggle", d.ThemeHandler.Toggle)

	// Admin
	admin := api.Group("/admin")
	admin.Get("/products", d.AdminHandler.List)
	admin.Post("/products", d.AdminHandler.Create)
	admin.Post("/products/reset", d.AdminHandler.Reset)
	admin.Put("/products/:id", d.AdminHandler.Update)
	admin.Delete("/products/:id", d.AdminHandler.Delete)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "Page not found")
	})
}
