// Package handler provides typed HTTP handlers that render through a small
// Response interface.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap turns it into an http.HandlerFunc, running binders,
// decorators and the error handler:
//
//	mux.Post("/count", handler.Wrap(
//		func(ctx handler.Context, _ struct{}) handler.Response {
//			return handler.Signals(ctl.Increment(), http.StatusOK)
//		},
//		handler.WithErrorHandler[handler.Context, struct{}](errHandler),
//	))
//
// Responses adapt to DataStar requests. Templ patches elements over SSE
// instead of writing HTML, Signals patches signals instead of writing JSON,
// and SSE keeps a stream open for pushing updates from the server.
//
// NewErrorHandler renders an error page for regular requests and an error
// toast for DataStar requests.
package handler
