package async

import (
	"context"
	"fmt"
)

// Reporter records a failure and returns a message suitable for display.
// Implementations must not panic.
type Reporter interface {
	Report(ctx context.Context, cause any, label string) string
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, cause any, label string) string

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, cause any, label string) string {
	return f(ctx, cause, label)
}

// Outcome is the result of Handle: a value, or absent when the unit of work
// failed and the failure has already been reported.
type Outcome[T any] struct {
	value   T
	ok      bool
	message string
}

// Value returns the result and whether it is present.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.ok
}

// OK reports whether the unit of work succeeded.
func (o Outcome[T]) OK() bool {
	return o.ok
}

// Message returns the reporter's display message for an absent outcome.
func (o Outcome[T]) Message() string {
	return o.message
}

// Panic wraps a value recovered from a panicking unit of work.
type Panic struct {
	Value any
}

func (p Panic) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Handle runs fn and waits for it. On success it returns the value and does
// not touch the reporter. On error or panic it calls reporter exactly once
// with the failure and label, then returns an absent outcome.
func Handle[T any](ctx context.Context, reporter Reporter, label string, fn func(context.Context) (T, error)) Outcome[T] {
	fut := Async(ctx, fn, func(ctx context.Context, fn func(context.Context) (T, error)) (res T, err error) {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				res, err = zero, Panic{Value: r}
			}
		}()
		return fn(ctx)
	})

	v, err := fut.Await()
	if err == nil {
		return Outcome[T]{value: v, ok: true}
	}

	var failure any = err
	if p, ok := err.(Panic); ok {
		failure = p.Value
	}

	return Outcome[T]{message: report(ctx, reporter, failure, label)}
}

// report calls reporter, containing a panic from a misbehaving implementation.
func report(ctx context.Context, reporter Reporter, cause any, label string) (msg string) {
	if reporter == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return reporter.Report(ctx, cause, label)
}
