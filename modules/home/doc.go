// Package home serves the demo home page: a click counter, demo toast
// buttons and three simulated failures (a delayed error, a database query
// against a missing table and a request to an unreachable host).
//
// Controller owns the page state. Demo runs are queued on a Scheduler, a
// single goroutine that executes them in order, and reported through
// async.Handle. Service exposes the page, a Datastar SSE stream and the
// actions over a chi router.
package home
