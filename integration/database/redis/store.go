package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionexpiry/core/expiry"
)

// Store keeps expiry timestamps in Redis. Every process pointing at the same
// server and prefix sees the same values, which makes it the natural
// expiry.BackendLocal implementation.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix namespaces keys, e.g. per application.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets a Redis-side expiration on written keys so abandoned entries
// get evicted. Zero, the default, keeps keys until removed.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewStore wraps an existing client.
func NewStore(client redis.Cmdable, opts ...StoreOption) *Store {
	s := &Store{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig wraps client using cfg.KeyPrefix. Additional options override config values.
func NewStoreFromConfig(cfg Config, client redis.Cmdable, opts ...StoreOption) *Store {
	return NewStore(client, append([]StoreOption{WithKeyPrefix(cfg.KeyPrefix)}, opts...)...)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", expiry.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
