package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/requestid"
)

// ErrorPageParams is passed to the error page component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams describes an error notification for DataStar requests.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler. All fields are optional.
type ErrorHandlerConfig struct {
	// ErrorPage renders the full page for regular requests.
	ErrorPage func(ErrorPageParams) templ.Component
	// Notify hands the toast to a notification system that delivers it out
	// of band. On success the request gets 204 and ErrorToast is not used.
	Notify func(Context, ErrorToastParams) error
	// ErrorToast renders the toast patched into the response when Notify is
	// unset or fails.
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchAppend.
	ToastMode datastar.ElementPatchMode
}

type errorInfo struct {
	status  int
	message string
	kind    string
	level   slog.Level
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  http.StatusInternalServerError,
		message: genericErrorMessage,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.message = httpErr.Message()
	}

	info.kind, info.level = "error", slog.LevelError
	if info.status >= 400 && info.status < 500 {
		info.kind, info.level = "warning", slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs the failure and renders
// an error page, or an error toast for DataStar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchAppend
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.level, "request error",
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			params := ErrorToastParams{
				Message:   info.message,
				Type:      info.kind,
				RequestID: requestID,
			}
			if notify(ctx, log, cfg, params) {
				return
			}
			renderToast(ctx, log, cfg, params)
			return
		}
		renderPage(ctx, log, cfg, info, requestID)
	}
}

func notify(ctx Context, log *slog.Logger, cfg ErrorHandlerConfig, params ErrorToastParams) bool {
	if cfg.Notify == nil {
		return false
	}
	if err := cfg.Notify(ctx, params); err != nil {
		log.Warn("error notification failed", logger.Error(err), logger.Event("notify_error"))
		return false
	}
	if err := Empty().Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to write response", logger.Error(err))
	}
	return true
}

func renderToast(ctx Context, log *slog.Logger, cfg ErrorHandlerConfig, params ErrorToastParams) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast component configured")
		return
	}
	component := cfg.ErrorToast(params)
	// SSE responses keep status 200 so the client applies the patch.
	resp := Templ(component, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error toast", logger.Error(err), logger.Event("render_error_toast"))
	}
}

func renderPage(ctx Context, log *slog.Logger, cfg ErrorHandlerConfig, info errorInfo, requestID string) {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.message, info.status)
		return
	}

	component := cfg.ErrorPage(ErrorPageParams{
		Error:      info.message,
		StatusCode: info.status,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.status)
	if err := component.Render(ctx.Request().Context(), w); err != nil {
		log.Error("failed to render error page", logger.Error(err), logger.Event("render_error_page"))
	}
}
