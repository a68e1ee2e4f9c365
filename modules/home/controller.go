package home

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/starterkit/pkg/async"
	"github.com/dmitrymomot/starterkit/pkg/backend"
	"github.com/dmitrymomot/starterkit/pkg/broadcast"
	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/toast"
)

// Toast texts shown by the page.
const (
	TitleSuccess        = "Success"
	TitleError          = "Error"
	TitleCounterUpdated = "Counter Updated!"

	DemoSuccessMessage = "This is a success message!"
	DemoErrorMessage   = "This is an error message!"
)

// State is the part of the page that changes over time.
type State struct {
	Count   int  `json:"count"`
	Loading bool `json:"loading"`
}

// Controller owns the counter and the loading flag and runs the demos.
type Controller struct {
	cfg       Config
	reporter  async.Reporter
	emitter   *toast.Emitter
	scheduler *Scheduler
	log       *slog.Logger
	ops       map[Operation]operation

	mu      sync.Mutex
	state   State
	changes *broadcast.Broadcaster[State]
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient replaces the client used by the network demo.
func WithHTTPClient(client *http.Client) ControllerOption {
	return func(c *Controller) {
		if client != nil {
			op := c.ops[OpNetwork]
			op.run = fetchJSON(client, c.cfg.NetworkURL)
			c.ops[OpNetwork] = op
		}
	}
}

// NewController builds a Controller. A nil db makes the database demo fail
// with backend.ErrNotConfigured. The scheduler must be running for triggers
// to settle.
func NewController(cfg Config, reporter async.Reporter, emitter *toast.Emitter, db *backend.Client, scheduler *Scheduler, opts ...ControllerOption) *Controller {
	if db == nil {
		db = backend.New(nil)
	}
	c := &Controller{
		cfg:       cfg,
		reporter:  reporter,
		emitter:   emitter,
		scheduler: scheduler,
		log:       logger.Discard(),
		changes:   broadcast.New[State](16),
		ops: map[Operation]operation{
			OpAsync: {
				label:   LabelAsync,
				success: "Operation completed successfully!",
				run:     delayedFailure(cfg.Delay),
			},
			OpDatabase: {
				label:   LabelDatabase,
				success: "Database query completed successfully!",
				run:     queryProfiles(db),
			},
			OpNetwork: {
				label:   LabelNetwork,
				success: "Network request completed successfully!",
				run:     fetchJSON(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.NetworkURL),
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("home"))
	return c
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe streams every state change until ctx is done.
func (c *Controller) Subscribe(ctx context.Context) *broadcast.Subscription[State] {
	return c.changes.Subscribe(ctx)
}

// Increment bumps the counter and confirms with a toast.
func (c *Controller) Increment() (State, error) {
	s := c.update(func(s *State) { s.Count++ })
	if _, err := c.emitter.Success(TitleCounterUpdated, fmt.Sprintf("Count is now %d", s.Count)); err != nil {
		return s, err
	}
	return s, nil
}

// ShowSuccess shows the demo success toast.
func (c *Controller) ShowSuccess() (toast.Notification, error) {
	return c.emitter.Success(TitleSuccess, DemoSuccessMessage)
}

// ShowError shows the demo error toast.
func (c *Controller) ShowError() (toast.Notification, error) {
	return c.emitter.Error(TitleError, DemoErrorMessage)
}

// Dismiss removes a toast, returning ErrToastNotFound if it is not visible.
func (c *Controller) Dismiss(id string) error {
	if !c.emitter.Dismiss(id) {
		return ErrToastNotFound
	}
	return nil
}

// Trigger queues op and sets loading. Loading is cleared once op settles.
// Overlapping triggers are not rejected; the last settlement wins. A trigger
// the scheduler refuses leaves the state untouched.
func (c *Controller) Trigger(ctx context.Context, op Operation) (State, error) {
	o, ok := c.ops[op]
	if !ok {
		return c.State(), ErrUnknownOperation
	}

	runCtx := context.WithoutCancel(ctx)

	// Submit never blocks. Holding mu makes the completion callback wait
	// until loading has been raised.
	c.mu.Lock()
	err := c.scheduler.Submit(
		func(context.Context) { c.run(runCtx, o) },
		func() { c.setLoading(false) },
	)
	if err == nil {
		c.state.Loading = true
		c.changes.Publish(c.state)
	}
	st := c.state
	c.mu.Unlock()

	if err != nil {
		c.log.WarnContext(ctx, "demo not scheduled", logger.Label(o.label), logger.Error(err))
		return st, err
	}
	return st, nil
}

// Close stops state subscriptions.
func (c *Controller) Close() {
	c.changes.Close()
}

func (c *Controller) run(ctx context.Context, o operation) {
	out := async.Handle(ctx, c.reporter, o.label, o.run)
	if out.OK() {
		if _, err := c.emitter.Success(TitleSuccess, o.success); err != nil {
			c.log.WarnContext(ctx, "failed to show toast", logger.Error(err))
		}
		return
	}

	if c.cfg.NotifyFailures {
		if _, err := c.emitter.Error(TitleError, out.Message()); err != nil {
			c.log.WarnContext(ctx, "failed to show toast", logger.Error(err))
		}
	}
}

func (c *Controller) setLoading(v bool) State {
	return c.update(func(s *State) { s.Loading = v })
}

func (c *Controller) update(fn func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.state)
	c.changes.Publish(c.state)
	return c.state
}
