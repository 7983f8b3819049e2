package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

// maxUpdateAttempts bounds optimistic retries for one cart write.
const maxUpdateAttempts = 64

var ErrCartBusy = errx.New(errors.New("cart: too many concurrent writers"), http.StatusConflict, "cart is busy, please retry")

// Store persists carts by session id.
type Store interface {
	Load(ctx context.Context, sessionID string) (*model.Cart, error)
	// Update applies fn to the stored cart and writes the result atomically.
	Update(ctx context.Context, sessionID string, fn func(*model.Cart) error) (*model.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load returns an empty cart when none is stored.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.read(ctx, s.rdb, sessionID)
}

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c getter, sessionID string) (*model.Cart, error) {
	key := s.cartKey(sessionID)
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.Cart{SessionID: sessionID, Items: []model.CartItem{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load cart from redis")
		return nil, errx.WrapRedis(err)
	}

	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal cart")
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// Update watches the cart key, applies fn and commits the result with a
// refreshed TTL. A commit that loses a race to another writer is retried
// against the fresh cart.
func (s *RedisStore) Update(ctx context.Context, sessionID string, fn func(*model.Cart) error) (*model.Cart, error) {
	key := s.cartKey(sessionID)
	var (
		out     *model.Cart
		stopErr error
	)
	txf := func(tx *redis.Tx) error {
		c, err := s.read(ctx, tx, sessionID)
		if err == nil {
			err = fn(c)
		}
		if err != nil {
			stopErr = err
			return err
		}
		b, err := json.Marshal(c)
		if err != nil {
			stopErr = fmt.Errorf("marshal cart: %w", err)
			return stopErr
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err == nil {
			out = c
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		stopErr = nil
		err := s.rdb.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return out, nil
		case stopErr != nil:
			return nil, stopErr
		case !errors.Is(err, redis.TxFailedErr):
			logx.Error().Err(err).Str("key", key).Msg("failed to save cart to redis")
			return nil, errx.WrapRedis(err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	logx.Warn().Str("key", key).Int("attempts", maxUpdateAttempts).Msg("cart update kept losing to concurrent writers")
	return nil, ErrCartBusy
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	key := s.cartKey(sessionID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete cart from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
