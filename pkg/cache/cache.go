// Package cache stores encoded transform results so that repeating an edit
// on an unchanged input skips decoding, transforming and encoding.
//
// # Backends
//
//   - [FileCache]: one zstd-compressed JSON entry per key under a directory,
//     used by the CLI (~/.cache/bmpedit by default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 of the input file and the options
// that influence the output (op chain, compatibility mode). [ScopedKeyer]
// prefixes every key so several callers can share one backend.
package cache

import (
	"context"
	"time"
)

// TTLResult is how long an encoded result stays cached.
const TTLResult = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts are the run options that change an encoded result.
type ResultKeyOpts struct {
	Ops    []string `json:"ops"`
	Compat bool     `json:"compat"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ResultKey identifies the encoded output of applying opts to the input
	// whose content hash is inputHash.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<sha256>" over the input hash and options.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
