// Package pg opens pgxpool connection pools from environment configuration
// and classifies PostgreSQL errors by SQLSTATE.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil { ... }
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
// Healthcheck returns a func suitable for httpserver.HealthCheckHandler.
package pg
