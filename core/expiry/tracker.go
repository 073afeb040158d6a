package expiry

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/sessionexpiry/core/logger"
)

// KeyPrefix is prepended to session identifiers to form storage keys,
// so persisted entries are easy to spot when inspecting a store.
const KeyPrefix = "expiryTime"

// firingSlack delays the timer past the persisted expiry to absorb
// the whole-second rounding of stored timestamps.
const firingSlack = time.Second

// Tracker persists a session expiry timestamp, answers expiry queries and
// fires a one-shot callback when the session lapses.
//
// Queries (Expiry, IsExpired, IsExpiredOrAbsent, RemainingSeconds, Armed) never
// mutate state. Commands (SetExpiry, RemoveExpiry, Start, Stop, Reset) do.
type Tracker struct {
	key     string
	backend Backend
	store   Store // nil when backend is invalid or unwired
	stores  Stores
	timeout time.Duration
	debug   bool
	logger  *slog.Logger
	clock   clockwork.Clock
	frame   Frame

	mu       sync.Mutex
	timer    clockwork.Timer
	callback func()
}

// New creates a tracker for identifier. The backend is resolved against stores
// once; an unknown backend does not fail construction, it disables persistence.
// Only a timeout shorter than one second is rejected.
func New(identifier string, backend Backend, timeout time.Duration, stores Stores, opts ...Option) (*Tracker, error) {
	if timeout.Round(time.Second) <= 0 {
		return nil, ErrInvalidTimeout
	}

	o := &options{
		clock: clockwork.NewRealClock(),
		frame: NewWindow(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		if o.debug {
			o.logger = logger.New(logger.WithLevel(slog.LevelDebug))
		} else {
			o.logger = logger.Discard()
		}
	}

	key := StorageKey(identifier)
	t := &Tracker{
		key:     key,
		backend: backend,
		store:   stores.resolve(backend),
		stores:  stores,
		timeout: timeout,
		debug:   o.debug,
		logger:  o.logger.With(logger.Component("session_expiry"), logger.StorageKey(key)),
		clock:   o.clock,
		frame:   o.frame,
	}

	if t.store == nil {
		t.logInvalidBackend(context.Background())
	}

	return t, nil
}

// NewFromConfig creates a tracker from cfg. Additional options override config values.
func NewFromConfig(cfg Config, stores Stores, opts ...Option) (*Tracker, error) {
	allOpts := append([]Option{WithDebug(cfg.Debug)}, opts...)
	return New(cfg.Identifier, Backend(cfg.Backend), cfg.Timeout, stores, allOpts...)
}

// StorageKey returns the key an identifier's expiry is stored under.
func StorageKey(identifier string) string {
	return KeyPrefix + identifier
}

// NewIdentifier generates a random session identifier.
func NewIdentifier() string {
	return uuid.NewString()
}

// Key returns the storage key of this tracker.
func (t *Tracker) Key() string { return t.key }

// Backend returns the configured backend name, valid or not.
func (t *Tracker) Backend() Backend { return t.backend }

// Timeout returns the session lifetime.
func (t *Tracker) Timeout() time.Duration { return t.timeout }

// Expiry reads the stored expiry timestamp (unix seconds) from the configured backend.
// It reports false when the backend is invalid, nothing is stored, or the store fails.
// The other backend is never consulted.
func (t *Tracker) Expiry(ctx context.Context) (int64, bool) {
	if t.store == nil {
		t.logInvalidBackend(ctx)
		return 0, false
	}

	raw, err := t.store.Get(ctx, t.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			t.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read expiry", logger.Error(err))
		}
		t.debugLog(ctx, "expiry is not set")
		return 0, false
	}

	expiresAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		t.debugLog(ctx, "stored expiry is malformed", slog.String("value", raw), logger.Error(err))
		return 0, false
	}

	t.debugLog(ctx, "expiry is set", logger.ExpiresAt(expiresAt))
	return expiresAt, true
}

// ExpiresAt is Expiry as a time.Time.
func (t *Tracker) ExpiresAt(ctx context.Context) (time.Time, bool) {
	expiresAt, ok := t.Expiry(ctx)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(expiresAt, 0), true
}

// SetExpiry stores now plus the timeout, in whole seconds, and returns the written value.
// It writes nothing and reports false when the backend is invalid or the write fails.
func (t *Tracker) SetExpiry(ctx context.Context) (int64, bool) {
	if t.store == nil {
		t.logInvalidBackend(ctx)
		return 0, false
	}

	expiresAt := t.nowSeconds() + int64(t.timeout.Round(time.Second)/time.Second)
	if err := t.store.Set(ctx, t.key, strconv.FormatInt(expiresAt, 10)); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "failed to store expiry", logger.Error(err))
		return 0, false
	}

	t.debugLog(ctx, "expiry set", logger.ExpiresAt(expiresAt))
	return expiresAt, true
}

// RemoveExpiry deletes the key from both backends, whichever one is configured.
// It is idempotent and never fails; store errors are logged.
func (t *Tracker) RemoveExpiry(ctx context.Context) {
	for _, s := range t.stores.all() {
		if err := s.Remove(ctx, t.key); err != nil {
			t.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remove expiry", logger.Error(err))
		}
	}
	t.debugLog(ctx, "expiry removed from storage")
}

// IsExpired reports whether the stored expiry has passed. It is false when the
// host is embedded in another frame or when no expiry is stored.
func (t *Tracker) IsExpired(ctx context.Context) bool {
	now := t.nowSeconds()
	expiresAt, ok := t.Expiry(ctx)
	expired := isTopLevel(t.frame) && ok && now > expiresAt

	t.debugLog(ctx, "expiry evaluated", slog.Bool("expired", expired))
	return expired
}

// IsExpiredOrAbsent reports whether the session is expired or its expiry is gone.
// An absent value usually means another tracker sharing the store already ended the session.
func (t *Tracker) IsExpiredOrAbsent(ctx context.Context) bool {
	expired := t.IsExpired(ctx)
	_, ok := t.Expiry(ctx)

	if expired {
		t.debugLog(ctx, "session is expired")
	}
	if !ok {
		t.debugLog(ctx, "session expiry is absent")
	}
	return expired || !ok
}

func (t *Tracker) nowSeconds() int64 {
	return t.clock.Now().Round(time.Second).Unix()
}

func (t *Tracker) debugLog(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !t.debug {
		return
	}
	t.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (t *Tracker) logInvalidBackend(ctx context.Context) {
	t.debugLog(ctx, "storage backend unavailable",
		logger.Backend(string(t.backend)),
		logger.Error(ErrInvalidBackend),
	)
}
