package handler_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/starterkit/handler"
	"github.com/dmitrymomot/starterkit/pkg/logger"
)

func errorPage(p handler.ErrorPageParams) templ.Component {
	return text("page: " + p.Error)
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return text(`<div class="toast ` + p.Type + `">` + p.Message + `</div>`)
}

func TestErrorHandler_Page(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&logs), logger.WithJSONFormatter()), handler.ErrorHandlerConfig{
		ErrorPage:  errorPage,
		ErrorToast: errorToast,
	})

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/missing", nil)), handler.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "page: The requested resource was not found", rec.Body.String())
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"path":"/missing"`)
}

func TestErrorHandler_GenericErrorHidesDetails(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{ErrorPage: errorPage})

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("secret db dsn"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred processing your request")
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestErrorHandler_FallbackWithoutPage(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{})

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests, try again in a moment")
}

func TestErrorHandler_DataStarToast(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{
		ErrorPage:  errorPage,
		ErrorToast: errorToast,
	})

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, dataStarRequest(http.MethodPost, "/demo/async")), handler.ErrTooManyRequests)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, "selector #toast-container")
	assert.Contains(t, body, "mode append")
	assert.Contains(t, body, `<div class="toast warning">Too many requests, try again in a moment</div>`)
}

func TestErrorHandler_DataStarNotify(t *testing.T) {
	t.Parallel()

	var got []handler.ErrorToastParams
	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{
		ErrorToast: errorToast,
		Notify: func(_ handler.Context, p handler.ErrorToastParams) error {
			got = append(got, p)
			return nil
		},
	})

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, dataStarRequest(http.MethodPost, "/demo/nope")), handler.ErrNotFound)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, "The requested resource was not found", got[0].Message)
	assert.Equal(t, "warning", got[0].Type)
}

func TestErrorHandler_DataStarNotifyFailureFallsBackToPatch(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{
		ErrorToast: errorToast,
		Notify: func(handler.Context, handler.ErrorToastParams) error {
			return errors.New("closed")
		},
	})

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, dataStarRequest(http.MethodPost, "/demo/async")), handler.ErrServiceUnavailable)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div class="toast error">The service is temporarily unavailable</div>`)
}

func TestHTTPError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "The requested resource was not found", handler.ErrNotFound.Message())
	assert.Equal(t, "Conflict", handler.NewHTTPError(http.StatusConflict, "conflict").Message())
	assert.Equal(t, "An error occurred processing your request", handler.NewHTTPError(599, "odd").Message())
}
