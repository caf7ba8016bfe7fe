package repos

import (
	"context"
	"encoding/json"

	"storefront/internal/domain"
)

// UserRepo stores the user blob as-is; shape migration happens in the
// reconciler, which needs the raw bytes to decide whether to write back.
type UserRepo struct{ store Store }

func NewUserRepo(s Store) *UserRepo { return &UserRepo{store: s} }

func (r *UserRepo) Raw(ctx context.Context, sid string) (string, bool, error) {
	return r.store.Get(ctx, SessionKey(sid, KeyUser))
}

func (r *UserRepo) SaveRaw(ctx context.Context, sid, raw string) error {
	return r.store.Set(ctx, SessionKey(sid, KeyUser), raw)
}

// Save writes the canonical encoding and returns it.
func (r *UserRepo) Save(ctx context.Context, sid string, u domain.UserRecord) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), r.SaveRaw(ctx, sid, string(b))
}

func (r *UserRepo) Remove(ctx context.Context, sid string) error {
	return r.store.Remove(ctx, SessionKey(sid, KeyUser))
}
