// Package cache stores rendered oncogrid artifacts between CLI runs.
//
// Rendering a large cohort is the slow part of a run, so the render
// pipeline keys every artifact by the dataset content, the grid operations
// applied to it and the output options, and stores the bytes under that
// key. A later run with the same inputs reads the artifact back instead of
// rebuilding the grid.
//
// Two backends are provided: [FileCache] keeps entries as JSON files under
// a directory (the CLI uses ~/.cache/oncogrid), and [NullCache] disables
// caching. Keys come from a [Keyer]; [ScopedKeyer] prefixes them so several
// configurations can share one directory without colliding.
package cache

import (
	"context"
	"time"
)

// ArtifactTTL is how long rendered artifacts stay valid.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
