// Package cache provides the persistent response store used by the fetcher.
//
// Backends share the [Cache] interface:
//
//   - [SQLiteCache]: single-file database, the default for CLI runs
//   - [FileCache]: one JSON file per entry under a directory
//   - [RedisCache]: shared store for multiple machines
//   - [NullCache]: disables caching
//
// Keys are opaque strings built with [HTTPKey]. Values are opaque bytes. A TTL
// of zero stores the entry without expiry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an expired entry is a miss.
// Clear removes every entry and is a no-op on an empty store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// HTTPKey returns the cache key for an HTTP request.
func HTTPKey(method, url string) string {
	return "http:" + strings.ToUpper(method) + ":" + url
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}
