package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, set PG_CONN_URL")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
)

// SQLSTATE codes inspected by the helpers below.
const (
	CodeUndefinedTable  = "42P01"
	CodeUndefinedColumn = "42703"
)

// IsNotFoundError reports whether err is pgx.ErrNoRows.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsUndefinedTableError reports a query against a relation that does not exist.
func IsUndefinedTableError(err error) bool {
	return hasCode(err, CodeUndefinedTable)
}

// IsUndefinedColumnError reports a query selecting a column that does not exist.
func IsUndefinedColumnError(err error) bool {
	return hasCode(err, CodeUndefinedColumn)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
