package home

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrymomot/starterkit/pkg/backend"
)

// Operation names a demo that can be triggered from the page.
type Operation string

const (
	OpAsync    Operation = "async"
	OpDatabase Operation = "database"
	OpNetwork  Operation = "network"
)

// Call-site labels recorded by the error reporter. Log queries and alerts
// key on these values.
const (
	LabelAsync = "HomePage.simulateAsyncError"
	// LabelDatabase replaces HomePage.simulateSupabaseError now that the
	// backend driver is pluggable. Queries on the old label must be updated.
	LabelDatabase = "HomePage.simulateDatabaseError"
	LabelNetwork  = "HomePage.simulateNetworkError"
)

type operation struct {
	label   string
	success string
	run     func(ctx context.Context) (any, error)
}

func delayedFailure(d time.Duration) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
			return nil, ErrSimulatedAsyncFailure
		}
	}
}

func queryProfiles(db *backend.Client) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		res := db.From("profiles").Select("*").Limit(1).Execute(ctx)
		if res.Error != nil {
			return nil, res.Error
		}
		return res.Data, nil
	}
}

func fetchJSON(client *http.Client, url string) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &NetworkError{Status: resp.StatusCode}
		}

		var v any
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
