package home

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/starterkit/pkg/logger"
)

// Task is a unit of work executed on the scheduler goroutine.
type Task func(ctx context.Context)

type scheduled struct {
	run  Task
	done func()
}

// Scheduler runs submitted tasks one at a time, in submission order.
type Scheduler struct {
	queue   chan scheduled
	stopped chan struct{}
	running atomic.Bool
	log     *slog.Logger
}

// NewScheduler creates a scheduler holding up to queueSize pending tasks.
// Call Run to start executing them.
func NewScheduler(queueSize int, log *slog.Logger) *Scheduler {
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Scheduler{
		queue:   make(chan scheduled, queueSize),
		stopped: make(chan struct{}),
		log:     log.With(logger.Component("scheduler")),
	}
}

// Submit enqueues run. done is called after run returns, even if it panics.
func (s *Scheduler) Submit(run Task, done func()) error {
	select {
	case <-s.stopped:
		return ErrSchedulerStopped
	default:
	}

	select {
	case s.queue <- scheduled{run: run, done: done}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run executes tasks until ctx is cancelled. The task in flight at that
// moment finishes on a context detached from ctx. Queued tasks are dropped.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSchedulerRunning
	}
	defer close(s.stopped)

	taskCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			s.stop(taskCtx, 0)
			return nil
		case t := <-s.queue:
			if ctx.Err() != nil {
				s.stop(taskCtx, 1)
				return nil
			}
			s.exec(taskCtx, t)
		}
	}
}

func (s *Scheduler) stop(ctx context.Context, dropped int) {
	if n := dropped + s.drop(); n > 0 {
		s.log.InfoContext(ctx, "dropped queued tasks", slog.Int("count", n))
	}
}

func (s *Scheduler) exec(ctx context.Context, t scheduled) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "task panicked", slog.Any("panic", r))
		}
		if t.done != nil {
			t.done()
		}
	}()
	t.run(ctx)
}

func (s *Scheduler) drop() int {
	n := 0
	for {
		select {
		case <-s.queue:
			n++
		default:
			return n
		}
	}
}
