package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a connection pool and pings it, retrying with exponential
// backoff so services restarting together do not all give up at once.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrEmptyConnectionString
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = min(cfg.MaxIdleConns, poolCfg.MaxConns)
	}
	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for attempt := range attempts {
		if lastErr = pool.Ping(ctx); lastErr == nil {
			return pool, nil
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			pool.Close()
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err(), lastErr)
		case <-time.After(cfg.RetryInterval << attempt):
		}
	}

	pool.Close()
	return nil, errors.Join(ErrFailedToOpenDBConnection, fmt.Errorf("after %d attempts: %w", attempts, lastErr))
}

// Healthcheck returns a function that pings the pool.
func Healthcheck(pool interface{ Ping(context.Context) error }) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
