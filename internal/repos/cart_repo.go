package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain"
)

type CartRepo struct{ store Store }

func NewCartRepo(s Store) *CartRepo { return &CartRepo{store: s} }

// Load returns the session cart. A missing key is an empty cart; an
// undecodable one is an empty cart plus ErrMalformed.
func (r *CartRepo) Load(ctx context.Context, sid string) (domain.Cart, error) {
	raw, ok, err := r.store.Get(ctx, SessionKey(sid, KeyCart))
	if err != nil || !ok {
		return domain.Cart{}, err
	}
	var items domain.Cart
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: cart: %v", ErrMalformed, err)
	}
	return tidy(items), nil
}

func (r *CartRepo) Save(ctx context.Context, sid string, items domain.Cart) error {
	if items == nil {
		items = domain.Cart{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, SessionKey(sid, KeyCart), string(b))
}

// tidy restores the at-rest invariants: qty >= 1 and one line per id
// (duplicates fold into the first occurrence).
func tidy(items domain.Cart) domain.Cart {
	out := make(domain.Cart, 0, len(items))
	for _, it := range items {
		if it.Qty < 1 {
			it.Qty = 1
		}
		if i := out.Index(it.ID); i >= 0 {
			out[i].Qty += it.Qty
			continue
		}
		out = append(out, it)
	}
	return out
}
