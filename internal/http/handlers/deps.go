package handlers

import (
	"storefront/internal/config"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	AuthHandler     *AuthHandler
	ThemeHandler    *ThemeHandler
	AdminHandler    *AdminHandler
	EventsHandler   *EventsHandler

	Auth *services.AuthService
	Cart *services.CartService
}

// NewDeps builds every service over one store. signals may be nil, in which
// case the catalog stream falls back to an in-process hub.
func NewDeps(store repos.Store, signals repos.Signals, cfg config.Config) *Deps {
	if signals == nil {
		signals = repos.NewLocalSignals()
	}
	cartRepo := repos.NewCartRepo(store)
	userRepo := repos.NewUserRepo(store)
	prodRepo := repos.NewProductRepo(store, signals)
	orderRepo := repos.NewOrderRepo(store)
	prefsRepo := repos.NewPrefsRepo(store)

	cartSvc := services.NewCartService(cartRepo, cfg.ShippingFee)
	catalogSvc := services.NewCatalogService(prodRepo)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userSvc)
	orderSvc := services.NewOrderService(cartSvc, orderRepo)
	themeSvc := services.NewThemeService(prefsRepo)

	return &Deps{
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Catalog: catalogSvc, Theme: themeSvc},
		OrderHandler:    &OrderHandler{Order: orderSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ThemeHandler:    &ThemeHandler{Theme: themeSvc},
		AdminHandler:    &AdminHandler{Catalog: catalogSvc},
		EventsHandler:   &EventsHandler{Cart: cartSvc, Catalog: catalogSvc},

		Auth: authSvc,
		Cart: cartSvc,
	}
}
