// Package cache stores rendered layouts so that identical requests are
// served without composing the document again.
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entries with an expiry under a directory, for the CLI
//   - [RedisCache]: a shared cache for the HTTP service
//
// # Keys
//
// A [Keyer] turns the hash of a document source and the render options into a
// cache key. [ScopedKeyer] adds a prefix so several deployments can share one
// backend.
package cache

import (
	"context"
	"time"
)

// TTLRender is how long a rendered layout stays cached. Renders are a pure
// function of the source and options, so the TTL only bounds storage.
const TTLRender = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with hit == false and a nil error; an error means the
// backend itself failed.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RenderKeyOpts are the render options that change the output for a given
// source.
type RenderKeyOpts struct {
	Syntax string `json:"syntax"`
	Format string `json:"format"`
}

// Keyer generates cache keys.
type Keyer interface {
	// RenderKey returns the key for the output of rendering the source with
	// the given hash.
	RenderKey(sourceHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces keys of the form "render:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return hashKey("render", sourceHash, opts)
}
