package backend_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/starterkit/pkg/backend"
)

type recordingDriver struct {
	mu      sync.Mutex
	queries []backend.Query
	rows    []backend.Row
	err     error
}

func (d *recordingDriver) Select(_ context.Context, q backend.Query) ([]backend.Row, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, q)
	return d.rows, d.err
}

func TestClient_Execute(t *testing.T) {
	t.Parallel()

	drv := &recordingDriver{rows: []backend.Row{{"id": 1}}}
	client := backend.New(drv)

	res := client.From("profiles").Select("*").Limit(1).Execute(context.Background())
	require.NoError(t, res.Error)
	assert.Equal(t, []backend.Row{{"id": 1}}, res.Data)

	require.Len(t, drv.queries, 1)
	assert.Equal(t, backend.Query{Table: "profiles", Columns: []string{"*"}, Limit: 1}, drv.queries[0])
}

func TestClient_DefaultsAndValidation(t *testing.T) {
	t.Parallel()

	drv := &recordingDriver{}
	client := backend.New(drv)

	res := client.From("profiles").Execute(context.Background())
	require.NoError(t, res.Error)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, []string{"*"}, drv.queries[0].Columns)

	res = client.From("").Execute(context.Background())
	assert.ErrorIs(t, res.Error, backend.ErrEmptyTable)

	res = client.From("profiles").Limit(-1).Execute(context.Background())
	assert.ErrorIs(t, res.Error, backend.ErrInvalidLimit)
	assert.Len(t, drv.queries, 1)
}

func TestClient_DriverError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	client := backend.New(&recordingDriver{err: boom})

	res := client.From("profiles").Select("id").Execute(context.Background())
	assert.ErrorIs(t, res.Error, boom)
	assert.Nil(t, res.Data)
}

func TestClient_Unconfigured(t *testing.T) {
	t.Parallel()

	res := backend.New(nil).From("profiles").Select("*").Limit(1).Execute(context.Background())
	assert.ErrorIs(t, res.Error, backend.ErrNotConfigured)
	assert.Nil(t, res.Data)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	c, err := backend.NewFromConfig(backend.Config{}, nil, nil)
	require.NoError(t, err)
	res := c.From("profiles").Execute(context.Background())
	assert.ErrorIs(t, res.Error, backend.ErrNotConfigured)

	_, err = backend.NewFromConfig(backend.Config{Driver: backend.DriverPostgres}, nil, nil)
	assert.ErrorIs(t, err, backend.ErrMissingPool)

	_, err = backend.NewFromConfig(backend.Config{Driver: backend.DriverREST}, nil, nil)
	assert.ErrorIs(t, err, backend.ErrMissingURL)

	_, err = backend.NewFromConfig(backend.Config{Driver: "mysql"}, nil, nil)
	assert.ErrorIs(t, err, backend.ErrUnknownDriver)

	c, err = backend.NewFromConfig(backend.Config{Driver: backend.DriverREST, URL: "http://localhost:54321"}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestFriendlyMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
		ok   bool
	}{
		{"not configured", backend.ErrNotConfigured, "Database is not configured", true},
		{"table not found", errors.Join(backend.ErrTableNotFound, errors.New("pg")), "The requested table does not exist", true},
		{"deadline", context.DeadlineExceeded, "The request timed out", true},
		{"api error", &backend.APIError{StatusCode: 400, Code: "PGRST100", Message: "bad filter"}, "bad filter", true},
		{"request failed", errors.Join(backend.ErrRequestFailed, errors.New("dial tcp")), "Could not reach the database", true},
		{"unrelated", errors.New("other"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := backend.FriendlyMessage(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
