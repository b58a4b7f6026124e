// Package cache stores computed layouts and rendered artifacts by key.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries under a directory, used by the CLI
//   - [RedisCache] shares entries between server instances
//
// Keys come from a [Keyer]. A layout key is derived from the hash of the
// people document plus every option that changes the result, so two runs
// that would compute the same layout share an entry:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(peopleBytes), cache.LayoutKeyOpts{Root: "anna"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//		// decode data
//	}
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as ok == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the people
	// document with hash peopleHash.
	LayoutKey(peopleHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendering of the layout with hash
	// layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Root      string  `json:"root"`
	Language  string  `json:"language,omitempty"`
	Base      float64 `json:"base,omitempty"`
	Spouse    float64 `json:"spouse,omitempty"`
	Vertical  float64 `json:"vertical,omitempty"`
	Min       float64 `json:"min,omitempty"`
	Expansion float64 `json:"expansion,omitempty"`
	Passes    int     `json:"passes,omitempty"`
	Snapshots bool    `json:"snapshots,omitempty"`
}

// ArtifactKeyOpts holds every option that changes a rendering.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels,omitempty"`
	Frame  int    `json:"frame,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(peopleHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", peopleHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
