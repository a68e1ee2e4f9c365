package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/starterkit/pkg/pg"
)

// Querier is the subset of pgxpool.Pool used by PostgresDriver.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresDriver runs queries over a pgx pool or connection.
type PostgresDriver struct {
	db Querier
}

// NewPostgresDriver creates a driver using db.
func NewPostgresDriver(db Querier) *PostgresDriver {
	return &PostgresDriver{db: db}
}

// Select runs a SELECT with quoted identifiers. A missing table maps to
// ErrTableNotFound.
func (d *PostgresDriver) Select(ctx context.Context, q Query) ([]Row, error) {
	sql, args := buildSelect(q)
	rows, err := d.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	data, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, mapPgError(err)
	}
	return data, nil
}

// buildSelect renders q with quoted identifiers. Tables may be schema
// qualified as "schema.table".
func buildSelect(q Query) (string, []any) {
	cols := make([]string, 0, len(q.Columns))
	for _, c := range q.Columns {
		if c == "*" {
			cols = append(cols, c)
			continue
		}
		cols = append(cols, pgx.Identifier{c}.Sanitize())
	}
	if len(cols) == 0 {
		cols = append(cols, "*")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(pgx.Identifier(strings.Split(q.Table, ".")).Sanitize())

	var args []any
	if q.Limit > 0 {
		sb.WriteString(" LIMIT $1")
		args = append(args, q.Limit)
	}
	return sb.String(), args
}

func mapPgError(err error) error {
	if pg.IsUndefinedTableError(err) {
		return errors.Join(ErrTableNotFound, err)
	}
	return err
}
