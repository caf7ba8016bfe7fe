package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/notify"
	"storefront/internal/pricing"
	"storefront/internal/repos"
)

// CartService is the cart ledger. Every mutation reads the stored cart,
// applies one change, writes the whole cart back and publishes one
// CartChange.
type CartService struct {
	Carts *repos.CartRepo
	Fee   float64

	mu     sync.Mutex
	events *notify.Hub[domain.CartChange]
}

func NewCartService(carts *repos.CartRepo, fee float64) *CartService {
	return &CartService{Carts: carts, Fee: fee, events: notify.NewHub[domain.CartChange]()}
}

type CartView struct {
	Items  domain.Cart   `json:"items"`
	Count  int           `json:"count"`
	Totals domain.Totals `json:"totals"`
}

// Get returns the stored cart, or an empty one if absent or unreadable.
func (s *CartService) Get(ctx context.Context, sid string) domain.Cart {
	items, err := s.Carts.Load(ctx, sid)
	if err != nil {
		action := "cart.read.fail"
		if errors.Is(err, repos.ErrMalformed) {
			action = "cart.read.malformed"
		}
		applog.Warn(nil, action, err, nil)
		return domain.Cart{}
	}
	return items
}

func (s *CartService) View(ctx context.Context, sid string) CartView {
	items := s.Get(ctx, sid)
	return CartView{Items: items, Count: pricing.Count(items), Totals: s.Totals(items)}
}

// Add appends a snapshot of p with qty 1, or bumps the existing line.
func (s *CartService) Add(ctx context.Context, sid string, p domain.Product) (domain.Cart, error) {
	return s.mutate(ctx, sid, func(items domain.Cart) domain.Cart {
		if i := items.Index(p.ID); i >= 0 {
			items[i].Qty++
			return items
		}
		return append(items, domain.CartLine{ID: p.ID, Name: p.Name, Price: p.Price, Qty: 1})
	})
}

// AddQty bumps a line by one. An unknown id changes nothing but still
// persists and notifies.
func (s *CartService) AddQty(ctx context.Context, sid string, id domain.ProductID) (domain.Cart, error) {
	return s.mutate(ctx, sid, func(items domain.Cart) domain.Cart {
		if i := items.Index(id); i >= 0 {
			items[i].Qty++
		}
		return items
	})
}

// SubQty lowers a line by one, never below 1. Only Remove deletes a line.
func (s *CartService) SubQty(ctx context.Context, sid string, id domain.ProductID) (domain.Cart, error) {
	return s.mutate(ctx, sid, func(items domain.Cart) domain.Cart {
		if i := items.Index(id); i >= 0 {
			items[i].Qty = max(1, items[i].Qty-1)
		}
		return items
	})
}

func (s *CartService) Remove(ctx context.Context, sid string, id domain.ProductID) (domain.Cart, error) {
	return s.mutate(ctx, sid, func(items domain.Cart) domain.Cart {
		return slices.DeleteFunc(items, func(it domain.CartLine) bool { return it.ID == id })
	})
}

func (s *CartService) Clear(ctx context.Context, sid string) error {
	_, err := s.mutate(ctx, sid, func(domain.Cart) domain.Cart { return domain.Cart{} })
	return err
}

// Totals works on a snapshot so a render can reuse the items it already has.
func (s *CartService) Totals(items domain.Cart) domain.Totals {
	return pricing.Totals(items, s.Fee)
}

func (s *CartService) Count(ctx context.Context, sid string) int {
	return pricing.Count(s.Get(ctx, sid))
}

// Subscribe attaches an observer for cart changes of every session.
// Delivery is best effort; the stored cart stays authoritative.
func (s *CartService) Subscribe() (<-chan domain.CartChange, func()) {
	return s.events.Subscribe()
}

func (s *CartService) mutate(ctx context.Context, sid string, fn func(domain.Cart) domain.Cart) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := fn(s.Get(ctx, sid))
	if items == nil {
		items = domain.Cart{}
	}
	if err := s.Carts.Save(ctx, sid, items); err != nil {
		return items, err
	}
	s.events.Publish(domain.CartChange{
		Session: sid,
		Items:   slices.Clone(items),
		Count:   pricing.Count(items),
	})
	return items, nil
}
