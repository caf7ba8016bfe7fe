package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"storefront/internal/services"
)

func TestSessionCookieReplacesForgedValues(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "x:admin_products"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	sid := extractCookie(resp, "sid")
	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("forged sid not replaced, got %q", sid)
	}

	cl := newClient(t, app)
	cl.do("GET", "/healthz", nil)
	first := cl.sid
	resp, _ = cl.do("GET", "/healthz", nil)
	if extractCookie(resp, "sid") != "" || cl.sid != first {
		t.Fatal("a valid sid must be kept")
	}
}

func TestMalformedCartReadsEmptyAndLogs(t *testing.T) {
	app, store := newApp(t)
	cl := newClient(t, app)
	cl.do("GET", "/healthz", nil)

	if err := store.Set(context.Background(), cl.sid+":cart", "{not json"); err != nil {
		t.Fatal(err)
	}
	var view services.CartView
	entries := captureLogs(t, func() {
		resp, body := cl.do("GET", "/api/v1/cart", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("cart: %d", resp.StatusCode)
		}
		decode(t, body, &view)
	})
	if len(view.Items) != 0 {
		t.Fatalf("want empty cart, got %+v", view)
	}
	if !hasAction(entries, "cart.read.malformed") {
		t.Fatal("expected cart.read.malformed log")
	}
}

func TestSecurityEventsAreLogged(t *testing.T) {
	app, _ := newApp(t)
	cl := newClient(t, app)

	entries := captureLogs(t, func() {
		cl.do("GET", "/api/v1/account/me", nil)
		cl.do("POST", "/api/v1/cart", map[string]any{"productId": "abc"})
		cl.do("POST", "/api/v1/account/login", map[string]any{"email": "bad", "password": "secret1"})
	})
	for _, action := range []string{"access.denied.account", "validation.fail", "auth.login.fail"} {
		if !hasAction(entries, action) {
			t.Fatalf("expected %s log", action)
		}
	}
}
