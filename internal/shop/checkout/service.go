// Package checkout reprices a cart against the catalog and turns it into an
// order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/cart"
	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

var ErrEmptyCart = errx.BadRequest(errors.New("checkout: cart is empty"), "cart is empty")

const paymentCard = "card"

type CartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.View, error)
	Clear(ctx context.Context, sessionID string) error
}

type CatalogReader interface {
	ByID(ctx context.Context, id int64) (model.Product, error)
}

type OrderWriter interface {
	Create(ctx context.Context, o *model.Order) error
}

// Quote is the repriced cart.
type Quote struct {
	Items []model.CartItem `json:"items"`
	cart.Summary
}

// Receipt is returned after a successful order.
type Receipt struct {
	Success bool         `json:"success"`
	OrderID string       `json:"orderId"`
	Order   *model.Order `json:"order"`
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader
	Orders  OrderWriter

	maxConcurrent int
	now           func() time.Time
}

func NewService(carts CartReader, catalog CatalogReader, orders OrderWriter, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		Cart:          carts,
		Catalog:       catalog,
		Orders:        orders,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

// Quote reprices every line of the session's cart at current catalog prices.
func (s *Service) Quote(ctx context.Context, sessionID string) (Quote, error) {
	v, err := s.Cart.Get(ctx, sessionID)
	if err != nil {
		return Quote{}, err
	}
	items := v.Items
	if len(items) == 0 {
		return Quote{}, ErrEmptyCart
	}

	lines := make([]model.CartItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("line %s: %w", it.Key, cart.ErrInvalidQuantity)
			}
			product, err := s.Catalog.ByID(gctx, it.ID)
			if err != nil {
				return fmt.Errorf("reprice product %d: %w", it.ID, err)
			}
			it.Product = product
			lines[idx] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Quote{}, err
	}

	return Quote{Items: lines, Summary: cart.Summarize(lines)}, nil
}

// PlaceOrder validates the form, prices the cart and records the order for
// userID (empty for guests). The cart is cleared afterwards.
func (s *Service) PlaceOrder(ctx context.Context, sessionID, userID string, form Form) (*Receipt, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	q, err := s.Quote(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		UserID:    userID,
		Date:      s.now().UTC(),
		Status:    model.OrderProcessing,
		Subtotal:  q.Subtotal,
		Shipping:  q.Shipping,
		Total:     q.Total,
		Currency:  model.CurrencyIDR,
		Billing:   form.Billing(),
		Items:     q.Items,
		PaymentBy: paymentCard,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.Cart.Clear(ctx, sessionID); err != nil {
		logx.Warn().Err(err).Str("orderID", o.ID).Msg("order placed but cart was not cleared")
	}
	logx.Info().Str("orderID", o.ID).Int64("total", o.Total).Int("lines", len(o.Items)).Msg("order placed")

	return &Receipt{Success: true, OrderID: o.ID, Order: o}, nil
}
