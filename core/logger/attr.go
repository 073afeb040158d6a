package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Attribute helpers return the empty Attr for missing values, so callers can
// pass them unconditionally: log.Debug("msg", logger.Error(err)).

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Errors
// ============================================================================

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups non-nil errors under the key "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// ============================================================================
// Session expiry
// ============================================================================

// StorageKey creates an attribute for the key an expiry is persisted under.
func StorageKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("storage_key", key)
}

// Backend creates an attribute for the configured storage backend name.
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// ExpiresAt renders a unix-seconds expiry as a UTC time.
func ExpiresAt(unix int64) slog.Attr {
	return slog.Time("expires_at", time.Unix(unix, 0).UTC())
}

// Remaining creates an attribute for the seconds left until expiry. May be negative.
func Remaining(seconds int64) slog.Attr {
	return slog.Int64("remaining_seconds", seconds)
}

// Delay creates an attribute for a scheduled delay.
func Delay(d time.Duration) slog.Attr {
	return slog.Duration("delay", d)
}

// ============================================================================
// Generic metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Result creates an attribute for operation results.
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}
