package services

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/pricing"
	"storefront/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

const (
	AllCategories        = "All"
	DefaultFeaturedLimit = 8
	defaultRating        = 4.0
)

// CatalogService serves the storefront from the admin-managed catalog,
// falling back to the seed list, and implements the admin CRUD on it.
type CatalogService struct {
	Products *repos.ProductRepo

	sf singleflight.Group
	mu sync.Mutex // serializes admin writes
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

// ProductDraft is the admin form as submitted. Numbers stay strings so a
// blank field can mean "keep" on edit.
type ProductDraft struct {
	Name     string
	Category string
	Price    string
	Rating   string
	Image    string
	Featured bool
}

// stored returns the reconciled admin catalog; ok is false when it is
// absent, unreadable or empty.
func (s *CatalogService) stored(ctx context.Context) ([]domain.Product, bool) {
	recs, ok, err := s.Products.Raw(ctx)
	if err != nil {
		applog.Warn(nil, "catalog.read.fail", err, nil)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	list := NormalizeProducts(recs)
	return list, len(list) > 0
}

// List is the storefront catalog: the admin list when there is one,
// otherwise the seed products.
func (s *CatalogService) List(ctx context.Context) []domain.Product {
	v, _, _ := s.sf.Do(repos.KeyProducts, func() (any, error) {
		if list, ok := s.stored(ctx); ok {
			return list, nil
		}
		return repos.SeedProducts(), nil
	})
	return slices.Clone(v.([]domain.Product))
}

func (s *CatalogService) Find(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Categories lists "All" followed by the distinct categories, sorted.
func Categories(products []domain.Product) []string {
	set := map[string]bool{}
	for _, p := range products {
		if p.Category != "" {
			set[p.Category] = true
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return append([]string{AllCategories}, out...)
}

// Featured returns up to limit featured products, or the first limit
// products when none is featured.
func (s *CatalogService) Featured(ctx context.Context, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products := s.List(ctx)
	featured := slices.DeleteFunc(slices.Clone(products), func(p domain.Product) bool { return !p.Featured })
	if len(featured) == 0 {
		featured = products
	}
	return featured[:min(limit, len(featured))]
}

// Filter keeps products in category ("All" or blank for any) whose name
// contains q, case-insensitively.
func Filter(products []domain.Product, category, q string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.Product{}
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AdminList returns the admin catalog, writing the seed to storage the
// first time so later edits start from it.
func (s *CatalogService) AdminList(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminList(ctx)
}

func (s *CatalogService) adminList(ctx context.Context) ([]domain.Product, error) {
	if list, ok := s.stored(ctx); ok {
		return list, nil
	}
	seed := repos.SeedProducts()
	if err := s.Products.Save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// Create appends a product with id max+1. A blank or zero rating becomes 4.0.
func (s *CatalogService) Create(ctx context.Context, d ProductDraft) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.adminList(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	var maxID domain.ProductID
	for _, p := range list {
		maxID = max(maxID, p.ID)
	}
	rating := pricing.Amount(d.Rating)
	if rating == 0 {
		rating = defaultRating
	}
	p := canonicalProduct(domain.Product{
		ID:       maxID + 1,
		Name:     d.Name,
		Category: d.Category,
		Price:    pricing.Amount(d.Price),
		Rating:   rating,
		Image:    d.Image,
		Featured: d.Featured,
	})
	if err := s.Products.Save(ctx, append(list, p)); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update replaces the editable fields of id. A blank rating or image keeps
// the previous value.
func (s *CatalogService) Update(ctx context.Context, id domain.ProductID, d ProductDraft) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.adminList(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	i := slices.IndexFunc(list, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	p := list[i]
	p.Name = d.Name
	p.Category = d.Category
	p.Price = pricing.Amount(d.Price)
	if strings.TrimSpace(d.Rating) != "" {
		p.Rating = pricing.Amount(d.Rating)
	}
	if img := strings.TrimSpace(d.Image); img != "" {
		p.Image = img
	}
	p.Featured = d.Featured
	list[i] = canonicalProduct(p)
	if err := s.Products.Save(ctx, list); err != nil {
		return domain.Product{}, err
	}
	return list[i], nil
}

func (s *CatalogService) Delete(ctx context.Context, id domain.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.adminList(ctx)
	if err != nil {
		return err
	}
	next := slices.DeleteFunc(list, func(p domain.Product) bool { return p.ID == id })
	if len(next) == len(list) {
		return ErrProductNotFound
	}
	return s.Products.Save(ctx, next)
}

// Reset drops the admin catalog and reseeds it.
func (s *CatalogService) Reset(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Products.Remove(ctx); err != nil {
		return nil, err
	}
	return s.adminList(ctx)
}

// Watch signals every change to the shared catalog key, from this process
// or, with a Redis backend, from any other.
func (s *CatalogService) Watch(ctx context.Context) (<-chan struct{}, error) {
	return s.Products.Watch(ctx)
}

// DraftFromRecord reads an admin submission, JSON or form fields, with the
// same aliases accepted for stored products.
func DraftFromRecord(input any) ProductDraft {
	r, ok := toRecord(input)
	if !ok {
		return ProductDraft{}
	}
	featured, _ := r.first(productFeaturedAliases)
	return ProductDraft{
		Name:     r.text(productNameAliases),
		Category: r.text(productCategoryAliases),
		Price:    r.text(productPriceAliases),
		Rating:   r.text(productRatingAliases),
		Image:    r.text(productImageAliases),
		Featured: truthy(featured),
	}
}
