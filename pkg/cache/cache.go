// Package cache provides content-addressed caching for computed
// decomposition walks.
//
// Walks are pure functions of the input mesh bytes and the search options,
// so cache keys are derived from a SHA-256 hash of the input plus the
// options. Three backends are available: a file cache for single-machine CLI
// use, a redis cache for shared/CI use, and a null cache that disables
// caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores computed results keyed by content hash.
//
// Get returns the stored bytes and whether the key was present; an absent
// key is not an error. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
