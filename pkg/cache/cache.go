// Package cache provides the caching layer shared by the CLI and the API
// server.
//
// Sector fetches, built graphs, and rendered artifacts are all cached under
// content-derived keys so a polling admin console doesn't rebuild identical
// maps. Backends:
//   - file: per-user cache directory for CLI usage
//   - redis: shared cache for multi-instance API deployments
//   - null: caching disabled (tests, --no-cache)
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Default TTLs per cached stage. Sector lists go stale as players explore,
// so they expire fastest; rendered artifacts are pure functions of their
// inputs and can live long.
const (
	TTLSectors  = 5 * time.Minute
	TTLGraph    = time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts are the build parameters that shape a graph cache key.
// Any field change must produce a different key.
type GraphKeyOpts struct {
	LinkThreshold   float64
	LongRangeChance float64
	Seed            uint64
	ProjScale       float64
	ProjOffsetX     float64
	ProjOffsetY     float64
}

// ArtifactKeyOpts are the render parameters that shape an artifact cache key.
type ArtifactKeyOpts struct {
	Format           string
	Detailed         bool
	ShowUndiscovered bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// SectorsKey generates a key for a galaxy's sector list.
	SectorsKey(galaxyID string) string

	// GraphKey generates a key for a built graph.
	GraphKey(galaxyID string, opts GraphKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// SectorsKey generates a key for a galaxy's sector list.
func (k *DefaultKeyer) SectorsKey(galaxyID string) string {
	return hashKey("sectors", galaxyID)
}

// GraphKey generates a key for a built graph.
func (k *DefaultKeyer) GraphKey(galaxyID string, opts GraphKeyOpts) string {
	return hashKey("graph", galaxyID, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces when
// several galaxies or deployments share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SectorsKey generates a prefixed sector-list key.
func (k *ScopedKeyer) SectorsKey(galaxyID string) string {
	return k.prefix + k.inner.SectorsKey(galaxyID)
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(galaxyID string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(galaxyID, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
