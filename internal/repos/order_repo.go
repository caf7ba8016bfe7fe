package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain"
)

type OrderRepo struct{ store Store }

func NewOrderRepo(s Store) *OrderRepo { return &OrderRepo{store: s} }

func (r *OrderRepo) List(ctx context.Context, sid string) ([]domain.Receipt, error) {
	raw, ok, err := r.store.Get(ctx, SessionKey(sid, KeyOrders))
	if err != nil || !ok {
		return []domain.Receipt{}, err
	}
	var out []domain.Receipt
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []domain.Receipt{}, fmt.Errorf("%w: orders: %v", ErrMalformed, err)
	}
	return out, nil
}

// Append adds rec to the session history. A malformed history is replaced.
func (r *OrderRepo) Append(ctx context.Context, sid string, rec domain.Receipt) error {
	list, err := r.List(ctx, sid)
	if err != nil && !isMalformed(err) {
		return err
	}
	list = append(list, rec)
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, SessionKey(sid, KeyOrders), string(b))
}
