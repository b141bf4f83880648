// Package cache stores rendered accumulators so repeated renders of the same
// configuration skip the chaos game.
//
// Entries are opaque byte slices with an optional TTL. Three backends are
// available: [FileCache] for the CLI, [RedisCache] for the HTTP server and
// [NullCache] when caching is disabled. [Open] picks one from a location
// string:
//
//	""                     no caching
//	"redis://host:6379/0"  Redis
//	"/some/dir"            files under /some/dir
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the data for key and whether it was found. Missing and
	// expired entries are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}

// Open returns the backend for location.
func Open(location string) (Cache, error) {
	switch {
	case location == "":
		return NewNullCache(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisCache(location)
	default:
		return NewFileCache(strings.TrimPrefix(location, "file://"))
	}
}
