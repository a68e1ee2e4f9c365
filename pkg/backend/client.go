package backend

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/starterkit/pkg/logger"
)

// Row is one record keyed by column name.
type Row = map[string]any

// Query describes a single select.
type Query struct {
	Table   string
	Columns []string
	Limit   int // 0 means no limit
}

// Driver executes a select against a concrete backend.
type Driver interface {
	Select(ctx context.Context, q Query) ([]Row, error)
}

// Result mirrors the data/error pair returned by hosted backend SDKs.
type Result struct {
	Data  []Row
	Error error
}

// Client builds queries and runs them on its Driver. Safe for concurrent use.
type Client struct {
	driver Driver
	log    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client. A nil driver yields a client whose queries fail
// with ErrNotConfigured.
func New(driver Driver, opts ...Option) *Client {
	if driver == nil {
		driver = unconfigured{}
	}
	c := &Client{driver: driver, log: logger.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// From starts a query against table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{client: c, query: Query{Table: table}}
}

// QueryBuilder accumulates a query. Use it from a single goroutine.
type QueryBuilder struct {
	client *Client
	query  Query
}

// Select sets the projected columns. No columns means all of them.
func (b *QueryBuilder) Select(columns ...string) *QueryBuilder {
	b.query.Columns = append(b.query.Columns[:0], columns...)
	return b
}

// Limit caps the number of returned rows. Zero means no limit.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.query.Limit = n
	return b
}

// Execute runs the query. Failures are returned in Result.Error.
func (b *QueryBuilder) Execute(ctx context.Context) Result {
	q := b.query
	if q.Table == "" {
		return Result{Error: ErrEmptyTable}
	}
	if q.Limit < 0 {
		return Result{Error: ErrInvalidLimit}
	}
	if len(q.Columns) == 0 {
		q.Columns = []string{"*"}
	}

	start := time.Now()
	rows, err := b.client.driver.Select(ctx, q)
	attrs := []any{
		logger.Component("backend"),
		slog.String("table", q.Table),
		logger.Duration(time.Since(start)),
	}
	if err != nil {
		b.client.log.DebugContext(ctx, "backend query failed", append(attrs, logger.Error(err))...)
		return Result{Error: err}
	}
	b.client.log.DebugContext(ctx, "backend query", append(attrs, slog.Int("rows", len(rows)))...)

	if rows == nil {
		rows = []Row{}
	}
	return Result{Data: rows}
}

type unconfigured struct{}

func (unconfigured) Select(context.Context, Query) ([]Row, error) {
	return nil, ErrNotConfigured
}
