package toast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/starterkit/pkg/broadcast"
	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/sanitizer"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 5 * time.Second

var cleanTitle = sanitizer.Compose(
	sanitizer.ValidUTF8,
	sanitizer.RemoveControlChars,
	sanitizer.SingleLine,
)

type entry struct {
	n     Notification
	timer *time.Timer
}

// Emitter manages the active notification set. Safe for concurrent use.
type Emitter struct {
	mu       sync.Mutex
	active   []*entry
	closed   bool
	duration time.Duration
	limit    int
	now      func() time.Time
	events   *broadcast.Broadcaster[Event]
	log      *slog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithDuration sets the display duration. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(e *Emitter) {
		if d > 0 {
			e.duration = d
		}
	}
}

// WithLimit caps the number of visible notifications; the oldest is
// dismissed when the cap is exceeded. Zero means unlimited.
func WithLimit(n int) Option {
	return func(e *Emitter) {
		if n >= 0 {
			e.limit = n
		}
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Emitter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(n int) Option {
	return func(e *Emitter) {
		e.events = broadcast.New[Event](n)
	}
}

// New creates an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		duration: DefaultDuration,
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.events == nil {
		e.events = broadcast.New[Event](64)
	}
	return e
}

// Show adds a notification. The first description, if any, is used.
func (e *Emitter) Show(kind Kind, title string, description ...string) (Notification, error) {
	if !kind.Valid() {
		return Notification{}, ErrInvalidKind
	}
	title = cleanTitle(title)
	if title == "" {
		return Notification{}, ErrEmptyTitle
	}

	now := e.now()
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		CreatedAt: now,
		ExpiresAt: now.Add(e.duration),
	}
	if len(description) > 0 {
		n.Description = sanitizer.Apply(description[0], sanitizer.ValidUTF8, sanitizer.Trim)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return Notification{}, ErrClosed
	}
	ent := &entry{n: n}
	ent.timer = time.AfterFunc(e.duration, func() { e.remove(n.ID, EventExpired) })
	e.active = append(e.active, ent)

	for e.limit > 0 && len(e.active) > e.limit {
		old := e.active[0]
		old.timer.Stop()
		e.active = e.active[1:]
		e.publish(EventDismissed, old.n)
	}
	e.publish(EventShown, n)
	e.mu.Unlock()

	return n, nil
}

// Success shows a success notification.
func (e *Emitter) Success(title string, description ...string) (Notification, error) {
	return e.Show(KindSuccess, title, description...)
}

// Error shows an error notification.
func (e *Emitter) Error(title string, description ...string) (Notification, error) {
	return e.Show(KindError, title, description...)
}

// Dismiss removes a notification early. It returns false if id is not active.
func (e *Emitter) Dismiss(id string) bool {
	return e.remove(id, EventDismissed)
}

// Active returns the visible notifications, oldest first.
func (e *Emitter) Active() []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Notification, len(e.active))
	for i, ent := range e.active {
		out[i] = ent.n
	}
	return out
}

// Subscribe returns a subscription receiving every subsequent Event.
func (e *Emitter) Subscribe(ctx context.Context) *broadcast.Subscription[Event] {
	return e.events.Subscribe(ctx)
}

// Close stops all timers, clears the active set and ends subscriptions.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for _, ent := range e.active {
		ent.timer.Stop()
	}
	e.active = nil
	e.mu.Unlock()

	e.events.Close()
}

func (e *Emitter) remove(id string, reason EventType) bool {
	e.mu.Lock()
	idx := -1
	for i, ent := range e.active {
		if ent.n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	ent := e.active[idx]
	ent.timer.Stop()
	e.active = append(e.active[:idx:idx], e.active[idx+1:]...)
	e.publish(reason, ent.n)
	e.mu.Unlock()

	return true
}

// publish must be called with mu held so subscribers observe events in the
// same order as the active set changes. Publish never blocks.
func (e *Emitter) publish(t EventType, n Notification) {
	e.events.Publish(Event{Type: t, Notification: n})
	e.log.Debug("toast "+string(t),
		slog.String("toast_id", n.ID),
		slog.String("kind", string(n.Kind)),
		slog.String("title", n.Title),
		logger.Component("toast"),
	)
}
