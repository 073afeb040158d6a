// Package pg connects to PostgreSQL with pgx and provides a table-backed
// expiry.Store.
//
// Connect parses the connection string into a pgxpool config, applies pool
// limits from Config and pings with exponential backoff:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// Store keeps one row per storage key in cfg.ExpiryTable:
//
//	store, err := pg.NewStoreFromConfig(cfg, pool)
//	if err != nil {
//		return err
//	}
//	if err := store.EnsureSchema(ctx); err != nil {
//		return err
//	}
//
// When a pgx.Tx is attached to the context with WithTx, the store runs its
// statements in that transaction:
//
//	tx, _ := pool.Begin(ctx)
//	ctx = pg.WithTx(ctx, tx)
//	tracker.SetExpiry(ctx) // written in tx
//	tx.Commit(ctx)
//
// Healthcheck returns a ping function for readiness probes. IsNotFoundError
// and IsTxClosedError classify pgx errors.
package pg
