package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-storefront/server/internal/core"
	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

type countingSource struct {
	calls    int
	products []model.Product
	err      error
}

func (c *countingSource) Products(context.Context) ([]model.Product, error) {
	c.calls++
	return c.products, c.err
}

func TestCachedSource(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	src := &countingSource{products: []model.Product{{ID: 7, Name: "Cached"}}}
	cached := NewCachedSource(src, client, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cached.Products(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Cached", got[0].Name)
	}
	assert.Equal(t, 1, src.calls)

	mr.FastForward(2 * time.Minute)
	_, err := cached.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)

	require.NoError(t, cached.Invalidate(ctx))
	_, err = cached.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}

func TestCachedSourcePassesErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	boom := errors.New("store down")
	_, err := NewCachedSource(&countingSource{err: boom}, client, time.Minute).Products(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(productsCacheKey))
}

func TestCachedSourceRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	src := &countingSource{products: []model.Product{{ID: 1}}}
	got, err := NewCachedSource(src, client, time.Minute).Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCachedSourceReplacesCorruptEntry(t *testing.T) {
	var buf bytes.Buffer
	logx.Init(logx.LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { logx.Init() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	require.NoError(t, mr.Set(productsCacheKey, "[{broken"))

	src := &countingSource{products: []model.Product{{ID: 9, Name: "Fresh"}}}
	got, err := NewCachedSource(src, client, time.Minute).Products(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, src.calls)

	var entry map[string]any
	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "discarding unreadable catalog cache entry", entry["message"])
	assert.NotEmpty(t, entry["error"])

	raw, err := mr.Get(productsCacheKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "Fresh")
}
