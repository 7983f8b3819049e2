package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/cart"
	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/order"
)

type priceBook struct {
	mu       sync.Mutex
	products map[int64]model.Product
}

func (p *priceBook) ByID(_ context.Context, id int64) (model.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prod, ok := p.products[id]
	if !ok {
		return model.Product{}, fmt.Errorf("product %d missing", id)
	}
	return prod, nil
}

func (p *priceBook) setPrice(id, price int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prod := p.products[id]
	prod.Price = price
	p.products[id] = prod
}

type fixture struct {
	svc    *Service
	carts  *cart.Service
	orders *order.Service
	book   *priceBook
	mr     *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	book := &priceBook{products: map[int64]model.Product{
		1: {ID: 1, Name: "Luminous Silk Serum", Price: 1_250_000},
		4: {ID: 4, Name: "Sculptural Gold Hoops", Price: 675_000},
	}}
	carts := cart.NewService(cart.NewRedisStore(rdb, time.Hour), book)
	orders := order.NewService(order.NewRedisStore(rdb))
	svc := NewService(carts, book, orders, 2)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, carts: carts, orders: orders, book: book, mr: mr}
}

func TestQuoteEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Quote(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuoteRepricesLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.Add(ctx, "s", 4, 1, nil)
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, "s", 1, 1, nil)
	require.NoError(t, err)

	q, err := f.svc.Quote(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(1_925_000), q.Subtotal)
	assert.Equal(t, int64(0), q.Shipping)

	f.book.setPrice(1, 500_000)
	q, err = f.svc.Quote(ctx, "s")
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.Equal(t, int64(4), q.Items[0].ID)
	assert.Equal(t, int64(500_000), q.Items[1].Price)
	assert.Equal(t, int64(1_175_000), q.Subtotal)
	assert.Equal(t, cart.FlatShippingCost, q.Shipping)
	assert.Equal(t, int64(1_195_000), q.Total)
	assert.Equal(t, "IDR", q.Currency)
}

func TestQuoteCatalogFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.carts.Add(ctx, "s", 1, 1, nil)
	require.NoError(t, err)

	f.book.mu.Lock()
	delete(f.book.products, 1)
	f.book.mu.Unlock()

	_, err = f.svc.Quote(ctx, "s")
	assert.Error(t, err)
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.carts.Add(ctx, "s", 1, 2, nil)
	require.NoError(t, err)

	r, err := f.svc.PlaceOrder(ctx, "s", "u1", validForm())
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, "ORD-1001", r.OrderID)
	assert.Equal(t, model.OrderProcessing, r.Order.Status)
	assert.Equal(t, int64(2_500_000), r.Order.Total)
	assert.Equal(t, "Budi", r.Order.Billing.FirstName)

	v, err := f.carts.Get(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, v.Items)

	listed, err := f.orders.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	raw, err := f.mr.Get("order:ORD-1001")
	require.NoError(t, err)
	assert.NotContains(t, raw, "4242")
	assert.NotContains(t, raw, "cvc")

	var stored model.Order
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "card", stored.PaymentBy)
}

func TestPlaceOrderRejectsBadForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.carts.Add(ctx, "s", 1, 1, nil)
	require.NoError(t, err)

	form := validForm()
	form.Phone = "call me"
	_, err = f.svc.PlaceOrder(ctx, "s", "u1", form)

	var verr *errx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "phone")

	v, err := f.carts.Get(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, v.Items, 1)
	assert.False(t, f.mr.Exists("order:seq"))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.PlaceOrder(context.Background(), "s", "", validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}
