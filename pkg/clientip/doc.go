// Package clientip resolves the address of the client behind an HTTP request.
//
// GetIP checks proxy headers in order (CF-Connecting-IP, X-Forwarded-For,
// X-Real-IP) and falls back to RemoteAddr. Values that do not parse as an IP
// are skipped. Middleware stores the result in the request context and
// Extractor exposes it to loggers built by pkg/logger:
//
//	r.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.Extractor))
//
// Headers are trusted as sent. Only enable this behind a proxy that
// overwrites them.
package clientip
