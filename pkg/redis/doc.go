// Package redis opens go-redis clients from environment configuration.
//
// REDIS_URL is optional for callers: an empty URL yields
// ErrEmptyConnectionURL so the caller can run without Redis.
package redis
