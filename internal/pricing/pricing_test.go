package pricing_test

import (
	"encoding/json"
	"math"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

func TestLineTotal(t *testing.T) {
	cases := []struct {
		price float64
		qty   int
		want  float64
	}{
		{10, 2, 20},
		{pricing.Amount("19.99"), 3, 59.97},
		{5, 0, 0},
		{5, -2, 0},
		{-5, 2, 0},
		{0.1, 3, 0.3},
		{math.NaN(), 2, 0},
	}
	for _, c := range cases {
		if got := pricing.LineTotal(c.price, c.qty); got != c.want {
			t.Fatalf("LineTotal(%v,%d) = %v, want %v", c.price, c.qty, got, c.want)
		}
	}
}

func TestCartTotal(t *testing.T) {
	items := domain.Cart{
		{ID: 1, Price: 19.99, Qty: 2}, // 39.98
		{ID: 2, Price: 5, Qty: 3},     // 15.00
	}
	if got := pricing.CartTotal(items); got != 54.98 {
		t.Fatalf("want 54.98, got %v", got)
	}
	if got := pricing.CartTotal(nil); got != 0 {
		t.Fatalf("empty cart total should be 0, got %v", got)
	}
}

func TestTotals(t *testing.T) {
	empty := pricing.Totals(domain.Cart{}, pricing.FlatFee)
	if empty != (domain.Totals{}) {
		t.Fatalf("empty cart should have zero totals, got %+v", empty)
	}

	one := pricing.Totals(domain.Cart{{ID: 1, Price: 129.99, Qty: 1}}, pricing.FlatFee)
	if one.Shipping != 9.95 {
		t.Fatalf("want shipping 9.95, got %v", one.Shipping)
	}
	if one.Subtotal != 129.99 || one.Total != 139.94 {
		t.Fatalf("bad totals %+v", one)
	}
}

func TestCount(t *testing.T) {
	items := domain.Cart{{ID: 1, Qty: 2}, {ID: 2, Qty: 3}}
	if n := pricing.Count(items); n != 5 {
		t.Fatalf("want 5, got %d", n)
	}
}

func TestAmount(t *testing.T) {
	if pricing.Amount("abc") != 0 {
		t.Fatal("non-numeric string should coerce to 0")
	}
	if pricing.Amount(nil) != 0 {
		t.Fatal("nil should coerce to 0")
	}
	if pricing.Amount(math.Inf(1)) != 0 {
		t.Fatal("inf should coerce to 0")
	}
	if pricing.Amount(json.Number("4.5")) != 4.5 {
		t.Fatal("json.Number should parse")
	}
	if pricing.Amount(" 12 ") != 12 {
		t.Fatal("padded string should parse")
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]any{
		"$0.00":     0,
		"$3.00":     3,
		"$3.50":     3.5,
		"$129.99":   129.99,
		"$19.90":    "19.9",
		"$1,299.00": 1299,
		"-$2.25":    -2.25,
	}
	for want, in := range cases {
		if got := pricing.Format(in); got != want {
			t.Fatalf("Format(%v) = %q, want %q", in, got, want)
		}
	}
	if got := pricing.Format(math.NaN()); got != "$0.00" {
		t.Fatalf("NaN should format as $0.00, got %q", got)
	}
	if got := pricing.Format(nil); got != "$0.00" {
		t.Fatalf("nil should format as $0.00, got %q", got)
	}
}
