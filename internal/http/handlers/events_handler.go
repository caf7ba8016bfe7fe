package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

const defaultKeepAlive = 15 * time.Second

// EventsHandler streams Server-Sent Events: "cart" whenever the session's
// cart changes and "catalog" whenever the shared catalog is saved.
type EventsHandler struct {
	Cart      *services.CartService
	Catalog   *services.CatalogService
	KeepAlive time.Duration
}

func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	sid := sessionID(c)
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")
	applog.Info(c, "events.open", nil)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h.stream(ctx, w, sid)
	}))
	return nil
}

// stream runs until ctx ends or the client goes away, which shows up as a
// failed flush.
func (h *EventsHandler) stream(ctx context.Context, w *bufio.Writer, sid string) {
	changes, unsubscribe := h.Cart.Subscribe()
	defer unsubscribe()

	catalog, err := h.Catalog.Watch(ctx)
	if err != nil {
		applog.Warn(nil, "events.catalog.watch.fail", err, nil)
	}

	keepAlive := h.KeepAlive
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	ping := time.NewTicker(keepAlive)
	defer ping.Stop()

	if writeEvent(w, "cart", h.Cart.View(ctx, sid)) != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			if ch.Session != sid {
				continue
			}
			view := services.CartView{Items: ch.Items, Count: ch.Count, Totals: h.Cart.Totals(ch.Items)}
			if writeEvent(w, "cart", view) != nil {
				return
			}
		case _, ok := <-catalog:
			if !ok {
				catalog = nil
				continue
			}
			if writeEvent(w, "catalog", fiber.Map{"key": repos.KeyProducts}) != nil {
				return
			}
		case <-ping.C:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return
			}
			if w.Flush() != nil {
				return
			}
		}
	}
}

func writeEvent(w *bufio.Writer, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, b); err != nil {
		return err
	}
	return w.Flush()
}
