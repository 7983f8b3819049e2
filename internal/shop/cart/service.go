package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

var (
	ErrOutOfStock       = errx.New(errors.New("cart: product out of stock"), http.StatusConflict, "product is out of stock")
	ErrInvalidAttribute = errx.BadRequest(errors.New("cart: unknown attribute option"), "selected option is not available")
)

// Catalog resolves products for the cart.
type Catalog interface {
	ByID(ctx context.Context, id int64) (model.Product, error)
}

// View is a cart plus its totals, as returned to clients.
type View struct {
	*model.Cart
	Summary Summary `json:"summary"`
}

type Service struct {
	store   Store
	catalog Catalog
	now     func() time.Time
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog, now: time.Now}
}

func (s *Service) view(c *model.Cart) *View {
	return &View{Cart: c, Summary: Summarize(c.Items)}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// Add resolves productID through the catalog and merges it into the cart.
// Missing attribute choices take the product's first option.
func (s *Service) Add(ctx context.Context, sessionID string, productID int64, qty int, attrs map[string]string) (*View, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.catalog.ByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock() {
		return nil, ErrOutOfStock
	}
	sel, err := resolveSelection(p, attrs)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, sessionID, func(items []model.CartItem) ([]model.CartItem, error) {
		return Add(items, p, qty, sel)
	})
}

func (s *Service) Remove(ctx context.Context, sessionID, key string) (*View, error) {
	return s.update(ctx, sessionID, func(items []model.CartItem) ([]model.CartItem, error) {
		return Remove(items, key), nil
	})
}

func (s *Service) RemoveProduct(ctx context.Context, sessionID string, productID int64) (*View, error) {
	return s.update(ctx, sessionID, func(items []model.CartItem) ([]model.CartItem, error) {
		return RemoveProduct(items, productID), nil
	})
}

func (s *Service) SetQuantity(ctx context.Context, sessionID, key string, qty int) (*View, error) {
	return s.update(ctx, sessionID, func(items []model.CartItem) ([]model.CartItem, error) {
		return SetQuantity(items, key, qty), nil
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// update runs fn against the stored lines inside one optimistic transaction,
// so concurrent writers to the same session never drop each other's lines.
func (s *Service) update(ctx context.Context, sessionID string, fn func([]model.CartItem) ([]model.CartItem, error)) (*View, error) {
	c, err := s.store.Update(ctx, sessionID, func(c *model.Cart) error {
		items, err := fn(c.Items)
		if err != nil {
			return err
		}
		c.Items = items
		c.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	logx.Debug().Str("session", sessionID).Int("lines", len(c.Items)).Msg("cart updated")
	return s.view(c), nil
}

func resolveSelection(p model.Product, attrs map[string]string) (map[string]string, error) {
	if len(p.Attributes) == 0 {
		return nil, nil
	}
	sel := make(map[string]string, len(p.Attributes))
	for _, a := range p.Attributes {
		choice, ok := attrs[a.Name]
		if !ok || choice == "" {
			if len(a.Options) > 0 {
				sel[a.Name] = a.Options[0]
			}
			continue
		}
		if !contains(a.Options, choice) {
			return nil, fmt.Errorf("%s=%q: %w", a.Name, choice, ErrInvalidAttribute)
		}
		sel[a.Name] = choice
	}
	return sel, nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
