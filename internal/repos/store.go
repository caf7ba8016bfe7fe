package repos

import (
	"context"
	"errors"
)

// Keys persisted per session unless noted.
const (
	KeyCart     = "cart"
	KeyUser     = "user"
	KeyOrders   = "orders"
	KeyTheme    = "pref-theme"
	KeyProducts = "admin_products" // shared by all sessions
)

// ErrMalformed marks a stored blob that could not be decoded. Callers treat
// it as absent.
var ErrMalformed = errors.New("malformed stored value")

func isMalformed(err error) bool { return errors.Is(err, ErrMalformed) }

// Store is a flat string key-value space, the server-side stand-in for
// browser local storage.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// SessionKey namespaces key under a session id. An empty sid addresses the
// bare key.
func SessionKey(sid, key string) string {
	if sid == "" {
		return key
	}
	return sid + ":" + key
}
