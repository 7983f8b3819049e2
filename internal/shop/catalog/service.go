// Package catalog serves products from a WooCommerce store, falling back to
// the bundled catalog whenever the store is missing or failing.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/security"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const (
	AllCategories  = "Semua"
	DefaultPerPage = 8
	MaxPerPage     = 100

	// SnapshotTTL is how long a prepared catalog is served from memory
	// before the sources are consulted again.
	SnapshotTTL = 30 * time.Second

	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

var (
	ErrProductNotFound = errx.NotFound(errors.New("catalog: product not found"), "product not found")
	ErrInvalidQuery    = errx.BadRequest(errors.New("catalog: invalid search query"), "search query contains unsupported characters")
)

var categories = []string{AllCategories, CategoryFashion, "Kecantikan", "Perhiasan"}

// Source yields the full product list.
type Source interface {
	Products(ctx context.Context) ([]model.Product, error)
}

type Query struct {
	Category string
	Search   string
	Sort     string
	Page     int
	PerPage  int
}

type Page struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PerPage  int             `json:"per_page"`
}

type Service struct {
	live     Source
	fallback Source
	now      func() time.Time

	mu       sync.RWMutex
	snapshot []model.Product
	loadedAt time.Time
	loads    singleflight.Group
}

// NewService builds the catalog. live may be nil when no store is configured.
func NewService(live, fallback Source) *Service {
	if fallback == nil {
		fallback = MockSource{}
	}
	return &Service{live: live, fallback: fallback, now: time.Now}
}

// products returns the prepared snapshot, rebuilding it once it is older
// than SnapshotTTL. Callers must not modify the returned products.
func (s *Service) products(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	snap, at := s.snapshot, s.loadedAt
	s.mu.RUnlock()
	if snap != nil && s.now().Sub(at) < SnapshotTTL {
		return snap, nil
	}

	v, err, _ := s.loads.Do("products", func() (any, error) {
		fresh, err := s.build(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.snapshot, s.loadedAt = fresh, s.now()
		s.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

// build loads the catalog and sanitizes descriptions once per snapshot.
func (s *Service) build(ctx context.Context) ([]model.Product, error) {
	var (
		raw []model.Product
		err error
	)
	if s.live != nil {
		raw, err = s.live.Products(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("live catalog unavailable, serving bundled products")
			raw = nil
		}
	}
	if raw == nil {
		raw, err = s.fallback.Products(ctx)
		if err != nil {
			return nil, fmt.Errorf("load bundled catalog: %w", err)
		}
	}

	out := make([]model.Product, 0, len(raw))
	for _, p := range raw {
		p.Description = security.SanitizeHTML(p.Description)
		p.ShortDescription = security.SanitizeHTML(p.ShortDescription)
		out = append(out, WithDefaultAttributes(p))
	}
	return out, nil
}

// List filters, sorts and pages the catalog.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	all, err := s.products(ctx)
	if err != nil {
		return Page{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := make([]model.Product, 0, len(all))
	for _, p := range all {
		if q.Category != "" && q.Category != AllCategories && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.Sort)

	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	res := Page{Total: len(filtered), Page: page, PerPage: perPage, Products: []model.Product{}}
	start := (page - 1) * perPage
	if start >= len(filtered) {
		return res, nil
	}
	end := start + perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	res.Products = filtered[start:end]
	return res, nil
}

func sortProducts(ps []model.Product, mode string) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	default:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].ID > ps[j].ID })
	}
}

// Search backs the search overlay. It matches name, category and the
// plain text of the description.
func (s *Service) Search(ctx context.Context, q string) ([]model.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.Product{}, nil
	}
	if !security.Validate(q, security.Search) {
		return nil, ErrInvalidQuery
	}

	all, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := []model.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(security.PlainText(p.Description)), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) ByID(ctx context.Context, id int64) (model.Product, error) {
	all, err := s.products(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("id %d: %w", id, ErrProductNotFound)
}

func (s *Service) BySlug(ctx context.Context, slug string) (model.Product, error) {
	all, err := s.products(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range all {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("slug %q: %w", slug, ErrProductNotFound)
}

// Categories lists the shop filter tabs; the first entry means "all".
func (s *Service) Categories() []string {
	return append([]string(nil), categories...)
}
