package health

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sessionexpiry/core/logger"
)

// ErrNotReady wraps every failure reported by Readiness.
var ErrNotReady = errors.New("service is not ready")

// Check verifies one dependency, e.g. redis.Healthcheck(client) or pg.Healthcheck(pool).
type Check func(context.Context) error

// Readiness runs every check and returns nil when all pass. Unlike a fail-fast
// loop it reports every failing dependency, each logged at error level.
//
// Example:
//
//	err := health.Readiness(ctx, log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	)
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) error {
	if log == nil {
		log = logger.Discard()
	}

	var errs []error
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}
