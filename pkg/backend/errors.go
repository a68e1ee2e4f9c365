package backend

import "errors"

var (
	ErrNotConfigured  = errors.New("backend is not configured")
	ErrTableNotFound  = errors.New("table not found")
	ErrEmptyTable     = errors.New("table name is required")
	ErrInvalidLimit   = errors.New("limit must not be negative")
	ErrUnknownDriver  = errors.New("unknown backend driver")
	ErrMissingPool    = errors.New("postgres driver requires a connection pool")
	ErrMissingURL     = errors.New("rest driver requires BACKEND_URL")
	ErrRequestFailed  = errors.New("backend request failed")
	ErrDecodeResponse = errors.New("failed to decode backend response")
)
