package repos

import "context"

// PrefsRepo holds small per-session UI preferences stored as plain strings.
type PrefsRepo struct{ store Store }

func NewPrefsRepo(s Store) *PrefsRepo { return &PrefsRepo{store: s} }

func (r *PrefsRepo) Theme(ctx context.Context, sid string) (string, bool, error) {
	return r.store.Get(ctx, SessionKey(sid, KeyTheme))
}

func (r *PrefsRepo) SetTheme(ctx context.Context, sid, theme string) error {
	return r.store.Set(ctx, SessionKey(sid, KeyTheme), theme)
}
