// Package order stores placed orders and serves a member's order history.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
)

var ErrOrderNotFound = errx.NotFound(errors.New("order: not found"), "order not found")

// Step is one stage of the delivery timeline.
type Step struct {
	Status model.OrderStatus `json:"status"`
	Label  string            `json:"label"`
}

var steps = []Step{
	{Status: model.OrderProcessing, Label: "Pesanan Dibuat"},
	{Status: model.OrderShipped, Label: "Dalam Pengiriman"},
	{Status: model.OrderCompleted, Label: "Terkirim"},
}

// Steps returns the delivery timeline in order.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// Timeline maps a status to its position in Steps. Statuses outside the
// happy path sit at the first step.
func Timeline(status model.OrderStatus) int {
	switch status {
	case model.OrderShipped:
		return 1
	case model.OrderCompleted:
		return 2
	default:
		return 0
	}
}

// FormatID renders the public order id for a sequence number.
func FormatID(number int64) string {
	return fmt.Sprintf("ORD-%d", number)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the user's orders, newest first, optionally filtered by order
// id or item name.
func (s *Service) List(ctx context.Context, userID, search string) ([]*model.Order, error) {
	orders, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return orders, nil
	}
	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		if matches(o, needle) {
			out = append(out, o)
		}
	}
	return out, nil
}

func matches(o *model.Order, needle string) bool {
	if strings.Contains(strings.ToLower(o.ID), needle) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return true
		}
	}
	return false
}

// Get returns one of the user's orders. Orders of other users read as
// missing.
func (s *Service) Get(ctx context.Context, userID, id string) (*model.Order, error) {
	o, err := s.store.Get(ctx, strings.TrimPrefix(id, "#"))
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
	}
	return o, nil
}

// Create allocates a number for o and persists it.
func (s *Service) Create(ctx context.Context, o *model.Order) error {
	n, err := s.store.NextNumber(ctx)
	if err != nil {
		return err
	}
	o.Number = n
	o.ID = FormatID(n)
	return s.store.Save(ctx, o)
}
