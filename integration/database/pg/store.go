package pg

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sessionexpiry/core/expiry"
)

// DBTX is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by Store.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// Store keeps expiry timestamps in a two-column PostgreSQL table.
// Statements run inside the transaction attached with WithTx, if any.
type Store struct {
	db    DBTX
	table string // quoted identifier

	getSQL    string
	setSQL    string
	removeSQL string
}

// NewStore creates a store on table. Call EnsureSchema once before use
// unless the table is managed by migrations.
func NewStore(db DBTX, table string) (*Store, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	quoted := pgx.Identifier{table}.Sanitize()
	return &Store{
		db:        db,
		table:     quoted,
		getSQL:    "SELECT value FROM " + quoted + " WHERE key = $1",
		setSQL:    "INSERT INTO " + quoted + " (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()",
		removeSQL: "DELETE FROM " + quoted + " WHERE key = $1",
	}, nil
}

// NewStoreFromConfig creates a store on cfg.ExpiryTable.
func NewStoreFromConfig(cfg Config, db DBTX) (*Store, error) {
	return NewStore(db, cfg.ExpiryTable)
}

// EnsureSchema creates the expiry table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.conn(ctx).Exec(ctx, "CREATE TABLE IF NOT EXISTS "+s.table+
		" (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())")
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.conn(ctx).QueryRow(ctx, s.getSQL, key).Scan(&value); err != nil {
		if IsNotFoundError(err) {
			return "", expiry.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.conn(ctx).Exec(ctx, s.setSQL, key, value)
	return err
}

func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.conn(ctx).Exec(ctx, s.removeSQL, key)
	return err
}

func (s *Store) conn(ctx context.Context) DBTX {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.db
}
