package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

// Profile is the stored member record. The hash never leaves this package.
type Profile struct {
	model.User
	PasswordHash string `json:"password_hash"`
}

// RedisStore keeps login sessions and registered member profiles.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisStore) profileKey(userID string) string {
	return fmt.Sprintf("user:%s:profile", userID)
}

func (s *RedisStore) SaveSession(ctx context.Context, token string, u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := s.rdb.Set(ctx, s.sessionKey(token), b, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("userID", u.ID).Msg("failed to save session")
		return errx.WrapRedis(err)
	}
	return nil
}

// LoadSession returns ErrUnauthorized for unknown or expired tokens.
func (s *RedisStore) LoadSession(ctx context.Context, token string) (model.User, error) {
	raw, err := s.rdb.Get(ctx, s.sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.User{}, ErrUnauthorized
		}
		logx.Error().Err(err).Msg("failed to load session")
		return model.User{}, errx.WrapRedis(err)
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return model.User{}, fmt.Errorf("unmarshal session user: %w", err)
	}
	return u, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.sessionKey(token)).Err(); err != nil {
		logx.Error().Err(err).Msg("failed to delete session")
		return errx.WrapRedis(err)
	}
	return nil
}

// CreateProfile stores p only when no profile exists for its member id.
// created=false means the email is already taken.
func (s *RedisStore) CreateProfile(ctx context.Context, p Profile) (bool, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("marshal profile: %w", err)
	}
	created, err := s.rdb.SetNX(ctx, s.profileKey(p.ID), b, 0).Result()
	if err != nil {
		logx.Error().Err(err).Str("userID", p.ID).Msg("failed to create profile")
		return false, errx.WrapRedis(err)
	}
	return created, nil
}

// LoadProfile reports ok=false when the member never registered.
func (s *RedisStore) LoadProfile(ctx context.Context, userID string) (Profile, bool, error) {
	raw, err := s.rdb.Get(ctx, s.profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Profile{}, false, nil
		}
		logx.Error().Err(err).Str("userID", userID).Msg("failed to load profile")
		return Profile{}, false, errx.WrapRedis(err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, true, nil
}
