package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	level   slog.Leveler
	output  io.Writer
	json    bool
	attrs   []slog.Attr
	handler *slog.HandlerOptions
}

// Option configures a logger built by New.
type Option func(*config)

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) {
		if level != nil {
			c.level = level
		}
	}
}

// WithOutput sets the destination. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithJSONFormatter switches to slog's JSON handler.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithTextFormatter switches to slog's text handler. This is the default.
func WithTextFormatter() Option {
	return func(c *config) {
		c.json = false
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithHandlerOptions replaces the handler options wholesale. Its Level wins over WithLevel.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		c.handler = opts
	}
}

// New builds a structured logger.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{}
	if cfg.handler != nil {
		*handlerOpts = *cfg.handler
	}
	if handlerOpts.Level == nil {
		handlerOpts.Level = cfg.level
	}

	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	return slog.New(h)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetAsDefault installs l as the process-wide slog default.
func SetAsDefault(l *slog.Logger) {
	if l != nil {
		slog.SetDefault(l)
	}
}
