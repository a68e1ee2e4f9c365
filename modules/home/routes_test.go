package home_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/starterkit/handler"
	"github.com/dmitrymomot/starterkit/modules/home"
	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/toast"
)

func newServer(t *testing.T, opts ...fixtureOption) (*httptest.Server, fixture) {
	t.Helper()

	f := newFixture(t, opts...)
	views := home.DefaultViews()
	errorHandler := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
		Notify:     home.NotifyErrors(f.emitter),
	})
	svc := home.NewService(f.ctl, f.emitter, errorHandler, home.WithAppName("Test App"))

	srv := httptest.NewServer(svc.Handle())
	t.Cleanup(srv.Close)
	return srv, f
}

func do(t *testing.T, method, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestIndex(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	var body strings.Builder
	_, err := bufio.NewReader(resp.Body).WriteTo(&body)
	require.NoError(t, err)

	html := body.String()
	assert.Contains(t, html, "<title>Test App</title>")
	assert.Contains(t, html, "count is 0")
	assert.Contains(t, html, "Simulate Async Error")
	assert.Contains(t, html, "Simulate DB Error")
	assert.Contains(t, html, "Simulate Network Error")
	assert.Contains(t, html, `id="toast-container"`)
	assert.NotContains(t, html, "Loading...</button>")
}

func TestCountEndpoint(t *testing.T) {
	t.Parallel()

	srv, f := newServer(t)

	for i := 1; i <= 3; i++ {
		resp := do(t, http.MethodPost, srv.URL+"/count")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, home.State{Count: i}, decode[home.State](t, resp))
	}

	state := decode[home.StateResponse](t, do(t, http.MethodGet, srv.URL+"/state"))
	assert.Equal(t, 3, state.Count)
	require.Len(t, state.Toasts, 3)
	assert.Equal(t, "Count is now 3", state.Toasts[2].Description)
	assert.Equal(t, 3, f.ctl.State().Count)
}

func TestToastEndpoints(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/toasts/success")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ok := decode[toast.Notification](t, resp)
	assert.Equal(t, home.DemoSuccessMessage, ok.Description)

	resp = do(t, http.MethodPost, srv.URL+"/toasts/error")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, toast.KindError, decode[toast.Notification](t, resp).Kind)

	assert.Equal(t, http.StatusNoContent, do(t, http.MethodDelete, srv.URL+"/toasts/"+ok.ID).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodDelete, srv.URL+"/toasts/"+ok.ID).StatusCode)

	state := decode[home.StateResponse](t, do(t, http.MethodGet, srv.URL+"/state"))
	assert.Len(t, state.Toasts, 1)
}

func TestDemoEndpoints(t *testing.T) {
	t.Parallel()

	srv, f := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/demo/async")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, decode[home.State](t, resp).Loading)

	f.waitSettled(t)
	assert.Len(t, f.sink.ByLabel(home.LabelAsync), 1)
	assert.Empty(t, f.emitter.Active())

	assert.Equal(t, http.StatusNotFound, do(t, http.MethodPost, srv.URL+"/demo/unknown").StatusCode)
}

func TestDemoEndpoints_DataStarErrorBecomesToast(t *testing.T) {
	t.Parallel()

	srv, f := newServer(t, withConfig(func(c *home.Config) { c.ToastDuration = 100 * time.Millisecond }))

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/demo/nope", nil)
	require.NoError(t, err)
	req.Header.Set("Datastar-Request", "true")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	active := f.emitter.Active()
	require.Len(t, active, 1)
	assert.Equal(t, toast.KindError, active[0].Kind)
	assert.Equal(t, home.TitleError, active[0].Title)
	assert.Equal(t, "The requested resource was not found", active[0].Description)

	require.Eventually(t, func() bool { return len(f.emitter.Active()) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStream_RequiresDataStar(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, srv.URL+"/stream").StatusCode)
}

func TestStream_PushesUpdates(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Datastar-Request", "true")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 256)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	waitFor := func(substrs ...string) {
		t.Helper()
		pending := make(map[string]bool, len(substrs))
		for _, s := range substrs {
			pending[s] = true
		}
		timeout := time.After(3 * time.Second)
		for len(pending) > 0 {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("stream closed while waiting for %v", pending)
				}
				for s := range pending {
					if strings.Contains(line, s) {
						delete(pending, s)
					}
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %v", pending)
			}
		}
	}

	waitFor(`"count":0`, `id="toast-container"`)

	require.Equal(t, http.StatusOK, do(t, http.MethodPost, srv.URL+"/count").StatusCode)
	waitFor(`"count":1`, "Count is now 1")
}
