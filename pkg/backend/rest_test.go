package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/starterkit/pkg/backend"
)

func TestRESTDriver_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "u1", "username": "ada"}})
	}))
	defer srv.Close()

	drv, err := backend.NewRESTDriver(srv.URL+"/", "anon-key")
	require.NoError(t, err)

	res := backend.New(drv).From("profiles").Select("*").Limit(1).Execute(context.Background())
	require.NoError(t, res.Error)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "ada", res.Data[0]["username"])
}

func TestRESTDriver_MissingTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"schema cache miss", http.StatusNotFound, `{"code":"PGRST205","message":"Could not find the table 'public.profiles' in the schema cache","details":null,"hint":null}`},
		{"undefined table", http.StatusBadRequest, `{"code":"42P01","message":"relation \"public.profiles\" does not exist"}`},
		{"plain 404", http.StatusNotFound, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			drv, err := backend.NewRESTDriver(srv.URL, "")
			require.NoError(t, err)

			res := backend.New(drv).From("profiles").Select("*").Limit(1).Execute(context.Background())
			require.Error(t, res.Error)
			assert.ErrorIs(t, res.Error, backend.ErrTableNotFound)

			var apiErr *backend.APIError
			require.True(t, errors.As(res.Error, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}

func TestRESTDriver_OtherAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key","hint":"Double check your key"}`))
	}))
	defer srv.Close()

	drv, err := backend.NewRESTDriver(srv.URL, "wrong")
	require.NoError(t, err)

	res := backend.New(drv).From("profiles").Execute(context.Background())
	var apiErr *backend.APIError
	require.True(t, errors.As(res.Error, &apiErr))
	assert.Equal(t, "Invalid API key", apiErr.Message)
	assert.Equal(t, "Double check your key", apiErr.Hint)
	assert.NotErrorIs(t, res.Error, backend.ErrTableNotFound)

	msg, ok := backend.FriendlyMessage(res.Error)
	assert.True(t, ok)
	assert.Equal(t, "Invalid API key", msg)
}

func TestRESTDriver_TransportAndDecodeErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	drv, err := backend.NewRESTDriver(srv.URL, "", backend.WithTimeout(time.Second))
	require.NoError(t, err)

	res := backend.New(drv).From("profiles").Execute(context.Background())
	assert.ErrorIs(t, res.Error, backend.ErrDecodeResponse)

	srv.Close()
	res = backend.New(drv).From("profiles").Execute(context.Background())
	assert.ErrorIs(t, res.Error, backend.ErrRequestFailed)
}

func TestNewRESTDriver_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := backend.NewRESTDriver("", "")
	assert.ErrorIs(t, err, backend.ErrMissingURL)

	_, err = backend.NewRESTDriver("not a url", "")
	assert.ErrorIs(t, err, backend.ErrMissingURL)
}
