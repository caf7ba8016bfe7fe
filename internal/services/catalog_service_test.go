package services_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"storefront/internal/repos"
	"storefront/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, repos.Store) {
	t.Helper()
	store := repos.NewMemoryStore()
	return services.NewCatalogService(repos.NewProductRepo(store, repos.NewLocalSignals())), store
}

func TestCatalog_SeedFallback(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	if got := svc.List(ctx); len(got) != 8 || got[0].Name != "Wireless Headphones" {
		t.Fatalf("want the 8 seed products, got %d", len(got))
	}

	_ = store.Set(ctx, repos.KeyProducts, "nope")
	if got := svc.List(ctx); len(got) != 8 {
		t.Fatalf("malformed admin catalog should fall back to seed, got %d", len(got))
	}
	_ = store.Set(ctx, repos.KeyProducts, "[]")
	if got := svc.List(ctx); len(got) != 8 {
		t.Fatalf("empty admin catalog should fall back to seed, got %d", len(got))
	}
	_ = store.Set(ctx, repos.KeyProducts, `[{"id":"12","title":"Legacy","price":"3.5"}]`)
	got := svc.List(ctx)
	if len(got) != 1 || got[0].ID != 12 || got[0].Name != "Legacy" || got[0].Price != 3.5 {
		t.Fatalf("admin catalog should be reconciled, got %+v", got)
	}
}

func TestCatalog_CategoriesFilterFind(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	products := svc.List(ctx)

	want := []string{"All", "Books", "Electronics", "Fashion", "Home"}
	if got := services.Categories(products); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := services.Filter(products, "Books", ""); len(got) != 2 {
		t.Fatalf("want 2 books, got %d", len(got))
	}
	if got := services.Filter(products, "All", "BOOK"); len(got) != 2 {
		t.Fatalf("want 2 name matches, got %d", len(got))
	}
	if got := services.Filter(products, "Home", "lamp"); len(got) != 1 || got[0].ID != 6 {
		t.Fatalf("want the lamp, got %+v", got)
	}

	p, err := svc.Find(ctx, 3)
	if err != nil || p.Name != "Canvas Sneakers" {
		t.Fatalf("find 3: %+v %v", p, err)
	}
	if _, err := svc.Find(ctx, 99); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestCatalog_FeaturedFallsBackToFirstN(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	if got := svc.Featured(ctx, 3); len(got) != 3 || got[0].ID != 1 {
		t.Fatalf("want first 3, got %+v", got)
	}
	if got := svc.Featured(ctx, 0); len(got) != 8 {
		t.Fatalf("default limit should be 8, got %d", len(got))
	}

	if _, err := svc.Create(ctx, services.ProductDraft{Name: "Desk", Category: "Home", Price: "120", Featured: true}); err != nil {
		t.Fatal(err)
	}
	got := svc.Featured(ctx, 8)
	if len(got) != 1 || got[0].Name != "Desk" {
		t.Fatalf("want only the featured product, got %+v", got)
	}
}

func TestCatalog_AdminCRUD(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	list, err := svc.AdminList(ctx)
	if err != nil || len(list) != 8 {
		t.Fatalf("admin list: %d %v", len(list), err)
	}
	if _, ok, _ := store.Get(ctx, repos.KeyProducts); !ok {
		t.Fatal("first admin load should seed storage")
	}

	p, err := svc.Create(ctx, services.ProductDraft{
		Name: " Desk ", Category: "Home", Price: "120.50", Image: " https://x.io/desk.png ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 9 || p.Rating != 4.0 || p.Name != "Desk" || p.Image != "https://x.io/desk.png" || p.Price != 120.5 {
		t.Fatalf("unexpected created product %+v", p)
	}

	up, err := svc.Update(ctx, 9, services.ProductDraft{Name: "Standing Desk", Category: "Home", Price: "199"})
	if err != nil {
		t.Fatal(err)
	}
	if up.Name != "Standing Desk" || up.Price != 199 || up.Rating != 4.0 || up.Image != "https://x.io/desk.png" {
		t.Fatalf("blank rating/image should keep previous values: %+v", up)
	}
	up, _ = svc.Update(ctx, 9, services.ProductDraft{Name: "Standing Desk", Category: "Home", Price: "199", Rating: "4.8"})
	if up.Rating != 4.8 {
		t.Fatalf("want rating 4.8, got %v", up.Rating)
	}
	if _, err := svc.Update(ctx, 42, services.ProductDraft{Name: "x"}); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, 2); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if got := svc.List(ctx); len(got) != 8 {
		t.Fatalf("want 8 after create+delete, got %d", len(got))
	}

	// next id stays max+1 even after a gap
	p, _ = svc.Create(ctx, services.ProductDraft{Name: "Rug", Price: "10"})
	if p.ID != 10 {
		t.Fatalf("want id 10, got %d", p.ID)
	}

	reset, err := svc.Reset(ctx)
	if err != nil || len(reset) != 8 {
		t.Fatalf("reset: %d %v", len(reset), err)
	}
	if _, err := svc.Find(ctx, 9); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatal("reset should drop admin-created products")
	}
}

func TestCatalog_SaveSignalsWatchers(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := svc.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, services.ProductDraft{Name: "Desk", Price: "1"}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("admin save did not signal")
	}
}

func TestCatalog_EditsDoNotTouchCartSnapshots(t *testing.T) {
	catalog, store := newCatalog(t)
	cart := services.NewCartService(repos.NewCartRepo(store), 9.95)
	ctx := context.Background()

	p, _ := catalog.Find(ctx, 1)
	_, _ = cart.Add(ctx, "s1", p)
	if _, err := catalog.Update(ctx, 1, services.ProductDraft{Name: "Renamed", Price: "1"}); err != nil {
		t.Fatal(err)
	}
	line := cart.Get(ctx, "s1")[0]
	if line.Name != "Wireless Headphones" || line.Price != 129.99 {
		t.Fatalf("cart line changed with catalog: %+v", line)
	}
}

func TestDraftFromRecord(t *testing.T) {
	d := services.DraftFromRecord(map[string]string{"title": "Desk", "price": "12", "img": "https://x.io/d.png", "featured": "on"})
	if d.Name != "Desk" || d.Price != "12" || d.Image != "https://x.io/d.png" || !d.Featured {
		t.Fatalf("form draft %+v", d)
	}
	d = services.DraftFromRecord([]byte(`{"name":"Desk","price":12.5,"rating":"","featured":false}`))
	if d.Price != "12.5" || d.Rating != "" || d.Featured {
		t.Fatalf("json draft %+v", d)
	}
}
