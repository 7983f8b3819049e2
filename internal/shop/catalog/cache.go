package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const productsCacheKey = "catalog:products"

// CachedSource keeps a snapshot of another source's catalog in Redis.
type CachedSource struct {
	next   Source
	client *redis.Client
	ttl    time.Duration
}

func NewCachedSource(next Source, client *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, client: client, ttl: ttl}
}

func (c *CachedSource) Products(ctx context.Context) ([]model.Product, error) {
	raw, err := c.client.Get(ctx, productsCacheKey).Bytes()
	switch {
	case err == nil:
		var products []model.Product
		uerr := json.Unmarshal(raw, &products)
		if uerr == nil {
			return products, nil
		}
		logx.Warn().Err(uerr).Msg("discarding unreadable catalog cache entry")
	case !errors.Is(err, redis.Nil):
		logx.Warn().Err(err).Msg("catalog cache read failed")
	}

	products, err := c.next.Products(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		if err := c.client.Set(ctx, productsCacheKey, data, c.ttl).Err(); err != nil {
			logx.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return products, nil
}

// Invalidate drops the cached snapshot.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, productsCacheKey).Err()
}
