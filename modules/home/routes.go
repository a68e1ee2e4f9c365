package home

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/starterkit/handler"
	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/toast"
)

// Service exposes the home page over HTTP.
type Service struct {
	appName      string
	ctl          *Controller
	emitter      *toast.Emitter
	views        Views
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithViews replaces the page components. Nil fields keep the defaults.
func WithViews(v Views) ServiceOption {
	return func(s *Service) { s.views = v.merge(DefaultViews()) }
}

// WithAppName sets the title shown on the page.
func WithAppName(name string) ServiceOption {
	return func(s *Service) {
		if name != "" {
			s.appName = name
		}
	}
}

// WithServiceLogger sets the logger used for stream lifecycle events.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService builds the HTTP surface for ctl. errorHandler renders failed
// actions; see NotifyErrors for routing DataStar failures to the emitter.
func NewService(ctl *Controller, emitter *toast.Emitter, errorHandler handler.ErrorHandler[handler.Context], opts ...ServiceOption) *Service {
	s := &Service{
		appName:      "Starter Kit",
		ctl:          ctl,
		emitter:      emitter,
		views:        DefaultViews(),
		errorHandler: errorHandler,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the router serving the page, its stream and its actions.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", wrap(s, s.index))
	r.Get("/stream", wrap(s, s.stream))
	r.Get("/state", wrap(s, s.snapshot))
	r.Post("/count", wrap(s, s.increment))
	r.Post("/toasts/success", wrap(s, s.showSuccess))
	r.Post("/toasts/error", wrap(s, s.showError))
	r.Delete("/toasts/{id}", handler.Wrap(s.dismiss,
		handler.WithBinders[handler.Context, dismissRequest](bindToastID),
		handler.WithErrorHandler[handler.Context, dismissRequest](s.errorHandler),
	))
	r.Post("/demo/{operation}", handler.Wrap(s.trigger,
		handler.WithBinders[handler.Context, triggerRequest](bindOperation),
		handler.WithErrorHandler[handler.Context, triggerRequest](s.errorHandler),
	))

	return r
}

// NotifyErrors returns a handler.ErrorHandlerConfig Notify hook that shows
// request errors as regular toasts, so they expire and can be dismissed like
// any other notification.
func NotifyErrors(emitter *toast.Emitter) func(handler.Context, handler.ErrorToastParams) error {
	return func(_ handler.Context, p handler.ErrorToastParams) error {
		_, err := emitter.Error(TitleError, p.Message)
		return err
	}
}

func wrap(s *Service, h handler.HandlerFunc[handler.Context, struct{}]) http.HandlerFunc {
	return handler.Wrap(h, handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler))
}

type dismissRequest struct {
	ID string
}

func bindToastID(r *http.Request, v any) error {
	req, ok := v.(*dismissRequest)
	if !ok {
		return handler.ErrBinderNotApplicable
	}
	req.ID = chi.URLParam(r, "id")
	if req.ID == "" {
		return handler.ErrBadRequest
	}
	return nil
}

type triggerRequest struct {
	Operation Operation
}

func bindOperation(r *http.Request, v any) error {
	req, ok := v.(*triggerRequest)
	if !ok {
		return handler.ErrBinderNotApplicable
	}
	req.Operation = Operation(chi.URLParam(r, "operation"))
	return nil
}

// StateResponse is the body of GET /state.
type StateResponse struct {
	Count   int                  `json:"count"`
	Loading bool                 `json:"loading"`
	Toasts  []toast.Notification `json:"toasts"`
}

func (s *Service) index(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Page(PageParams{
		AppName: s.appName,
		State:   s.ctl.State(),
		Toasts:  s.emitter.Active(),
		Views:   s.views,
	}))
}

func (s *Service) snapshot(_ handler.Context, _ struct{}) handler.Response {
	st := s.ctl.State()
	return handler.JSON(StateResponse{
		Count:   st.Count,
		Loading: st.Loading,
		Toasts:  s.emitter.Active(),
	}, http.StatusOK)
}

func (s *Service) increment(_ handler.Context, _ struct{}) handler.Response {
	st, err := s.ctl.Increment()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Signals(st, http.StatusOK)
}

func (s *Service) showSuccess(ctx handler.Context, _ struct{}) handler.Response {
	n, err := s.ctl.ShowSuccess()
	return s.shown(ctx, n, err)
}

func (s *Service) showError(ctx handler.Context, _ struct{}) handler.Response {
	n, err := s.ctl.ShowError()
	return s.shown(ctx, n, err)
}

// shown answers a toast request. DataStar clients receive the toast over
// the stream so they get an empty body.
func (s *Service) shown(ctx handler.Context, n toast.Notification, err error) handler.Response {
	if err != nil {
		return handler.Error(err)
	}
	if handler.IsDataStar(ctx.Request()) {
		return handler.Empty()
	}
	return handler.JSON(n, http.StatusCreated)
}

func (s *Service) dismiss(_ handler.Context, req dismissRequest) handler.Response {
	if err := s.ctl.Dismiss(req.ID); err != nil {
		return handler.Error(handler.ErrNotFound)
	}
	return handler.Empty()
}

func (s *Service) trigger(ctx handler.Context, req triggerRequest) handler.Response {
	st, err := s.ctl.Trigger(ctx, req.Operation)
	switch {
	case errors.Is(err, ErrUnknownOperation):
		return handler.Error(handler.ErrNotFound)
	case errors.Is(err, ErrQueueFull):
		return handler.Error(handler.ErrTooManyRequests)
	case err != nil:
		return handler.Error(handler.ErrServiceUnavailable)
	}
	return handler.Signals(st, http.StatusAccepted)
}

// stream pushes state signals and toast patches until the client leaves.
func (s *Service) stream(_ handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		states := s.ctl.Subscribe(stream)
		defer states.Close()
		events := s.emitter.Subscribe(stream)
		defer events.Close()

		s.log.DebugContext(stream, "stream opened", logger.Component("home"))
		defer s.log.DebugContext(stream, "stream closed", logger.Component("home"))

		if err := stream.SendSignals(s.ctl.State()); err != nil {
			return err
		}
		if err := stream.SendComponent(s.views.ToastContainer(s.emitter.Active())); err != nil {
			return err
		}

		for {
			select {
			case <-stream.Done():
				return nil
			case _, ok := <-states.C():
				if !ok {
					return nil
				}
				// Always send the latest snapshot since intermediate values may be dropped.
				if err := stream.SendSignals(s.ctl.State()); err != nil {
					return err
				}
			case ev, ok := <-events.C():
				if !ok {
					return nil
				}
				if err := s.sendToastEvent(stream, ev); err != nil {
					return err
				}
			}
		}
	})
}

func (s *Service) sendToastEvent(stream handler.StreamContext, ev toast.Event) error {
	if ev.Type == toast.EventShown {
		return stream.SendComponent(s.views.ToastItem(ev.Notification),
			handler.WithTarget("#"+toastContainerID),
			handler.WithPatchMode(handler.PatchAppend),
		)
	}
	return stream.RemoveElement("#" + toastElementID(ev.Notification.ID))
}
