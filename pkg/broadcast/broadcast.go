// Package broadcast fans values out to in-process subscribers.
//
// A Broadcaster never blocks publishers: when a subscriber's buffer is full
// the value is dropped for that subscriber only. Subscriptions end when their
// context is cancelled, when Close is called on them, or when the broadcaster
// itself is closed; in every case the receive channel is closed.
package broadcast

import (
	"context"
	"sync"
)

// Subscription receives values published after it was created.
type Subscription[T any] struct {
	ch     chan T
	stop   chan struct{}
	mu     sync.RWMutex
	closed bool
	parent *Broadcaster[T]
}

// C returns the receive channel. It is closed when the subscription ends.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close ends the subscription. Safe to call multiple times.
func (s *Subscription[T]) Close() {
	if s.parent != nil {
		s.parent.remove(s)
		return
	}
	s.close()
}

func (s *Subscription[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
		close(s.stop)
	}
}

func (s *Subscription[T]) done() <-chan struct{} {
	return s.stop
}

func (s *Subscription[T]) send(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

// Broadcaster delivers published values to every active subscription.
// All methods are safe for concurrent use.
type Broadcaster[T any] struct {
	mu     sync.RWMutex
	subs   map[*Subscription[T]]struct{}
	buffer int
	closed bool
	wg     sync.WaitGroup
}

// New creates a broadcaster whose subscriptions buffer up to bufferSize
// values (minimum 1).
func New[T any](bufferSize int) *Broadcaster[T] {
	return &Broadcaster[T]{
		subs:   make(map[*Subscription[T]]struct{}),
		buffer: max(bufferSize, 1),
	}
}

// Subscribe registers a subscription tied to ctx. Subscribing to a closed
// broadcaster returns an already closed subscription.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) *Subscription[T] {
	sub := &Subscription[T]{ch: make(chan T, b.buffer), stop: make(chan struct{})}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		sub.close()
		return sub
	}
	sub.parent = b
	b.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			select {
			case <-ctx.Done():
				b.remove(sub)
			case <-sub.done():
			}
		}()
	}
	return sub
}

// Publish sends v to all subscriptions and returns how many accepted it.
func (b *Broadcaster[T]) Publish(v T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0
	}
	delivered := 0
	for sub := range b.subs {
		if sub.send(v) {
			delivered++
		}
	}
	return delivered
}

// Len returns the number of active subscriptions.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription. Later Publish calls are no-ops.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.close()
	}
	clear(b.subs)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Broadcaster[T]) remove(sub *Subscription[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	sub.close()
}
