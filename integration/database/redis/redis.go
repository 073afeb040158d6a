package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect parses cfg.ConnectionURL, then pings the server until it answers,
// backing off exponentially between attempts. The whole process is bounded
// by cfg.ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval
	var lastErr error
	for attempt := range attempts {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err(), lastErr)
		case <-time.After(interval << attempt):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, fmt.Errorf("after %d attempts: %w", attempts, lastErr))
}

// Healthcheck returns a function that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.Join(ErrHealthcheckFailed, ErrNilClient)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
