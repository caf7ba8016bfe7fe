package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// ProductRepo owns the shared admin_products key. Every write fires a
// storage-change signal for that key.
type ProductRepo struct {
	store   Store
	signals Signals
}

func NewProductRepo(s Store, sig Signals) *ProductRepo {
	return &ProductRepo{store: s, signals: sig}
}

// Raw returns the stored catalog as individual JSON records so the caller
// can reconcile each one. ok is false when the key is absent.
func (r *ProductRepo) Raw(ctx context.Context) ([]json.RawMessage, bool, error) {
	raw, ok, err := r.store.Get(ctx, KeyProducts)
	if err != nil || !ok {
		return nil, false, err
	}
	var recs []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, false, fmt.Errorf("%w: admin_products: %v", ErrMalformed, err)
	}
	return recs, true, nil
}

func (r *ProductRepo) Save(ctx context.Context, list []domain.Product) error {
	if list == nil {
		list = []domain.Product{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyProducts, string(b)); err != nil {
		return err
	}
	return r.signal(ctx)
}

func (r *ProductRepo) Remove(ctx context.Context) error {
	if err := r.store.Remove(ctx, KeyProducts); err != nil {
		return err
	}
	return r.signal(ctx)
}

func (r *ProductRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	if r.signals == nil {
		return nil, errors.New("product repo has no signals")
	}
	return r.signals.Watch(ctx, KeyProducts)
}

func (r *ProductRepo) signal(ctx context.Context) error {
	if r.signals == nil {
		return nil
	}
	return r.signals.Notify(ctx, KeyProducts)
}
