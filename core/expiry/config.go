package expiry

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Config holds tracker configuration loadable from the environment.
type Config struct {
	Identifier string        `env:"SESSION_EXPIRY_ID"`
	Backend    string        `env:"SESSION_EXPIRY_BACKEND" envDefault:"localStorage"`
	Timeout    time.Duration `env:"SESSION_EXPIRY_TIMEOUT" envDefault:"30m"`
	Debug      bool          `env:"SESSION_EXPIRY_DEBUG" envDefault:"false"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		Backend: string(BackendLocal),
		Timeout: 30 * time.Minute,
	}
}

type options struct {
	debug  bool
	logger *slog.Logger
	clock  clockwork.Clock
	frame  Frame
}

// Option is a functional option for configuring a Tracker.
type Option func(*options)

// WithDebug enables diagnostic log lines for every query and state transition.
// It never changes returned values or stored state.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithLogger sets the sink for diagnostics.
// When debug is on and no logger is given, a debug-level text logger on stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock replaces the wall clock and timer facility, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithFrame sets the embedding context used by IsExpired.
func WithFrame(frame Frame) Option {
	return func(o *options) {
		if frame != nil {
			o.frame = frame
		}
	}
}

// Minutes converts a fractional minute count into a duration.
func Minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
