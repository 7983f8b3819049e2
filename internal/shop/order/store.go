package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const (
	sequenceKey = "order:seq"
	// numberBase keeps order numbers four digits wide from the first sale.
	numberBase int64 = 1000
)

type Store interface {
	NextNumber(ctx context.Context) (int64, error)
	Save(ctx context.Context, o *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
}

// RedisStore keeps each order as JSON under order:<id> and indexes member
// orders in a newest-first list per user.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) orderKey(id string) string {
	return fmt.Sprintf("order:%s", id)
}

func (s *RedisStore) userKey(userID string) string {
	return fmt.Sprintf("user:%s:orders", userID)
}

func (s *RedisStore) NextNumber(ctx context.Context) (int64, error) {
	n, err := s.rdb.Incr(ctx, sequenceKey).Result()
	if err != nil {
		logx.Error().Err(err).Msg("failed to allocate order number")
		return 0, errx.WrapRedis(err)
	}
	return numberBase + n, nil
}

func (s *RedisStore) Save(ctx context.Context, o *model.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.orderKey(o.ID), b, 0)
		if o.UserID != "" {
			pipe.LPush(ctx, s.userKey(o.UserID), o.ID)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("orderID", o.ID).Msg("failed to save order to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*model.Order, error) {
	raw, err := s.rdb.Get(ctx, s.orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
		}
		logx.Error().Err(err).Str("orderID", id).Msg("failed to load order from redis")
		return nil, errx.WrapRedis(err)
	}
	var o model.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order %s: %w", id, err)
	}
	return &o, nil
}

func (s *RedisStore) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	ids, err := s.rdb.LRange(ctx, s.userKey(userID), 0, -1).Result()
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to list orders from redis")
		return nil, errx.WrapRedis(err)
	}

	orders := make([]*model.Order, 0, len(ids))
	for _, id := range ids {
		o, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				logx.Warn().Str("orderID", id).Str("userID", userID).Msg("order index points at missing order")
				continue
			}
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

var _ Store = (*RedisStore)(nil)
