package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/starterkit/handler"
)

func TestSSE_RequiresDataStar(t *testing.T) {
	t.Parallel()

	resp := handler.SSE(func(handler.StreamContext) error {
		t.Fatal("stream must not start")
		return nil
	})

	err := resp.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stream", nil))
	var httpErr handler.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSSE_StreamsUpdates(t *testing.T) {
	t.Parallel()

	resp := handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendSignals(map[string]any{"loading": true}); err != nil {
			return err
		}
		if err := stream.SendComponent(text(`<div id="toast-1">hi</div>`), handler.WithTarget("#toast-container"), handler.WithPatchMode(handler.PatchAppend)); err != nil {
			return err
		}
		return stream.RemoveElement("#toast-1")
	})

	rec := httptest.NewRecorder()
	require.NoError(t, resp.Render(rec, dataStarRequest(http.MethodGet, "/stream")))

	body := rec.Body.String()
	assert.Contains(t, body, "event: datastar-patch-signals")
	assert.Contains(t, body, `{"loading":true}`)
	assert.Contains(t, body, `<div id="toast-1">hi</div>`)
	assert.Contains(t, body, "selector #toast-1")
	assert.Contains(t, body, "mode remove")
}

func TestSSE_StopsOnDisconnect(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	req := dataStarRequest(http.MethodGet, "/stream").WithContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- handler.SSE(func(stream handler.StreamContext) error {
			<-stream.Done()
			return nil
		}).Render(httptest.NewRecorder(), req)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after disconnect")
	}
}
