// Package logger builds *slog.Logger instances for the starter application.
//
// New creates a logger configured by functional options: output format
// (text or JSON), minimum level, static attributes and context extractors
// that pull request-scoped values (such as the request id) into every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextExtractors(requestid.Extractor),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, Component, Label, Event, RequestID) keep key names
// consistent across packages. Helpers that accept optional values return an
// empty slog.Attr for nil input, so they can be passed unconditionally:
//
//	log.Info("query finished", logger.Error(err))
package logger
