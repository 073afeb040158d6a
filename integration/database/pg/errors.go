package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use PG_CONN_URL env var")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrInvalidTableName         = errors.New("invalid expiry table name")
)

// IsNotFoundError reports whether err means no row matched.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTxClosedError reports whether err comes from using a finished transaction.
func IsTxClosedError(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed)
}
