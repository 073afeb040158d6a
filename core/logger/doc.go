// Package logger builds log/slog loggers and provides attribute helpers with
// consistent keys across the module.
//
// Build a logger:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "web")),
//	)
//
// Attribute helpers return the empty slog.Attr for missing values, which
// handlers skip, so they can be passed without nil checks:
//
//	log.Debug("expiry read",
//		logger.StorageKey(key),
//		logger.ExpiresAt(ts),
//		logger.Error(err),
//	)
//
// Components accept a *slog.Logger through options and fall back to Discard.
package logger
