// Package cache stores rendered plate artifacts between runs.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//   - [RedisCache]: shared cache for multi-instance API servers
//   - [MongoCache]: durable artifact store with server-side expiry
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the layout bytes,
// the composition options, the part name and the output format, so any
// change to the input invalidates the entry. [ScopedKeyer] prefixes keys
// for callers that share a backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long artifacts stay cached unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour
