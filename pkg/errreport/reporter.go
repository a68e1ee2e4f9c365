package errreport

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/requestid"
)

// DefaultFallback is returned when no usable message can be derived.
const DefaultFallback = "An unexpected error occurred"

const defaultMaxLength = 200

// MessageMapper translates a known error into display text. It returns false
// when it does not recognise err.
type MessageMapper func(err error) (string, bool)

// Reporter logs failures and produces display messages.
type Reporter struct {
	log      *slog.Logger
	sink     Sink
	fallback string
	maxLen   int
	mappers  []MessageMapper
	now      func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger reports are written to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSink sets where records are stored. Nil disables storage.
func WithSink(s Sink) Option {
	return func(r *Reporter) { r.sink = s }
}

// WithFallback sets the message used for unknown failures. Blank values are ignored.
func WithFallback(msg string) Option {
	return func(r *Reporter) {
		if msg = sanitize(msg, 0); msg != "" {
			r.fallback = msg
		}
	}
}

// WithMaxLength limits display messages to n runes.
func WithMaxLength(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.maxLen = n
		}
	}
}

// WithMessageMapper registers mappers tried in order for known errors.
func WithMessageMapper(mappers ...MessageMapper) Option {
	return func(r *Reporter) {
		for _, m := range mappers {
			if m != nil {
				r.mappers = append(r.mappers, m)
			}
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Reporter. Without options it logs to slog.Default and keeps
// no records.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		log:      slog.Default(),
		fallback: DefaultFallback,
		maxLen:   defaultMaxLength,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report records v under label and returns a non-empty display message.
func (r *Reporter) Report(ctx context.Context, v any, label string) (msg string) {
	if r == nil {
		return DefaultFallback
	}
	msg = r.fallback
	defer func() {
		if p := recover(); p != nil {
			msg = r.fallback
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	cause := Classify(v)
	msg = r.message(cause)

	rec := Record{
		Label:     label,
		Message:   msg,
		Detail:    cause.Detail(),
		Kind:      cause.Kind(),
		RequestID: requestid.FromContext(ctx),
		Timestamp: r.now().UTC(),
	}

	attrs := []slog.Attr{
		logger.Label(label),
		slog.String("cause_kind", string(rec.Kind)),
		logger.Component("errreport"),
	}
	if k, ok := cause.(Known); ok && k.Err != nil {
		attrs = append(attrs, logger.Error(k.Err))
	} else {
		attrs = append(attrs, slog.String("error", rec.Detail))
	}
	r.log.LogAttrs(ctx, slog.LevelError, label, attrs...)

	if r.sink != nil {
		if err := r.sink.Append(ctx, rec); err != nil {
			r.log.LogAttrs(ctx, slog.LevelWarn, "failed to store error record",
				logger.Label(label),
				logger.Error(err),
				logger.Component("errreport"),
			)
		}
	}

	return msg
}

func (r *Reporter) message(cause Cause) string {
	known, ok := cause.(Known)
	if !ok {
		return r.fallback
	}

	text := known.Message
	if known.Err != nil {
		for _, m := range r.mappers {
			if mapped, ok := m(known.Err); ok {
				text = mapped
				break
			}
		}
	}

	if s := sanitize(text, r.maxLen); s != "" {
		return s
	}
	return r.fallback
}
