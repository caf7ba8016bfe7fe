package services

import (
	"context"
	"errors"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

type ThemeService struct {
	Prefs *repos.PrefsRepo
}

func NewThemeService(prefs *repos.PrefsRepo) *ThemeService { return &ThemeService{Prefs: prefs} }

// Get returns the saved theme; anything unset or unknown reads as light.
func (s *ThemeService) Get(ctx context.Context, sid string) domain.Theme {
	v, ok, err := s.Prefs.Theme(ctx, sid)
	if err != nil {
		applog.Warn(nil, "theme.read.fail", err, nil)
		return domain.ThemeLight
	}
	if t := domain.Theme(v); ok && t == domain.ThemeDark {
		return t
	}
	return domain.ThemeLight
}

func (s *ThemeService) Set(ctx context.Context, sid string, t domain.Theme) error {
	if t != domain.ThemeLight && t != domain.ThemeDark {
		return ErrInvalidTheme
	}
	return s.Prefs.SetTheme(ctx, sid, string(t))
}

func (s *ThemeService) Toggle(ctx context.Context, sid string) (domain.Theme, error) {
	next := domain.ThemeDark
	if s.Get(ctx, sid) == domain.ThemeDark {
		next = domain.ThemeLight
	}
	return next, s.Set(ctx, sid, next)
}
