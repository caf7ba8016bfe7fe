package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

var ErrCartEmpty = errors.New("cart empty")

// OrderService completes checkout. No payment is taken: placing an order
// records a receipt and empties the cart.
type OrderService struct {
	Cart   *CartService
	Orders *repos.OrderRepo
}

func NewOrderService(cart *CartService, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Cart: cart, Orders: orders}
}

func (s *OrderService) Place(ctx context.Context, sid string, contact domain.Contact) (domain.Receipt, error) {
	items := s.Cart.Get(ctx, sid)
	if len(items) == 0 {
		return domain.Receipt{}, ErrCartEmpty
	}
	rec := domain.Receipt{
		ID:       uuid.NewString(),
		Items:    items,
		Totals:   s.Cart.Totals(items),
		Contact:  contact,
		PlacedAt: time.Now().UTC(),
	}
	if err := s.Orders.Append(ctx, sid, rec); err != nil {
		return domain.Receipt{}, err
	}
	if err := s.Cart.Clear(ctx, sid); err != nil {
		return domain.Receipt{}, err
	}
	return rec, nil
}

func (s *OrderService) History(ctx context.Context, sid string) []domain.Receipt {
	list, err := s.Orders.List(ctx, sid)
	if err != nil {
		applog.Warn(nil, "orders.read.fail", err, nil)
	}
	return list
}
