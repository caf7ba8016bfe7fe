// Package pricing holds the cart money rules. Arithmetic runs on
// shopspring/decimal and rounds to cents only when a line or an
// aggregate is produced, never on intermediate steps.
package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// FlatFee is the shipping charge applied to any non-empty cart.
const FlatFee = 9.95

// Amount coerces a loosely typed value to a finite number. Anything that
// does not parse (including NaN and infinities) becomes 0.
func Amount(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case domain.ProductID:
		f = float64(x)
	case decimal.Decimal:
		f = x.InexactFloat64()
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func lineTotal(price float64, qty int) decimal.Decimal {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}
	if qty < 0 {
		qty = 0
	}
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// LineTotal is round(max(0,price) * max(0,qty), 2).
func LineTotal(price float64, qty int) float64 {
	return cents(lineTotal(price, qty))
}

func cartTotal(items domain.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(lineTotal(it.Price, it.Qty))
	}
	return sum.Round(2)
}

// CartTotal sums the rounded line totals and rounds the result.
func CartTotal(items domain.Cart) float64 {
	return cents(cartTotal(items))
}

// Totals derives subtotal, shipping and total from a cart snapshot. Shipping
// is fee for a non-empty cart and zero otherwise.
func Totals(items domain.Cart, fee float64) domain.Totals {
	sub := cartTotal(items)
	ship := decimal.Zero
	if len(items) > 0 && fee > 0 {
		ship = decimal.NewFromFloat(fee)
	}
	return domain.Totals{
		Subtotal: cents(sub),
		Shipping: cents(ship),
		Total:    cents(sub.Add(ship)),
	}
}

// Count is the badge number: the sum of line quantities.
func Count(items domain.Cart) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}

// Format renders a dollar amount such as "$1,299.90". Invalid input prints
// as "$0.00".
func Format(v any) string {
	f := cents(decimal.NewFromFloat(Amount(v)))
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", f)
}
