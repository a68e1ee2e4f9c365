// Package httpserver runs an http.Handler with timeouts and graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run blocks until ctx is cancelled or the listener fails, then drains
// in-flight requests for at most the configured shutdown timeout.
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
