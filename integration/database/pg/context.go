package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// txContextKey is an unexported key type to avoid context key collisions.
type txContextKey struct{}

// WithTx returns a context carrying tx. Stores created by this package run
// their statements inside it, so expiry writes can commit or roll back
// together with the caller's own changes. A nil tx leaves ctx unchanged.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext extracts a transaction stored with WithTx.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx, ok
}
