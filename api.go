package lrudisk

import (
	"fmt"

	c "github.com/unkn0wn-root/lrudisk/codec"
)

// Cache is an LRU key/value store whose iteration order is recency order.
// Reads and writes of an existing key promote it to most-recently-used.
// K is the caller's key type, V the value type; serialization of both is
// handled by pluggable codecs.
//
// Not safe for concurrent use.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and promotes it. A miss is the only
	// side-effect-free lookup failure: nothing is touched.
	Get(key K) (v V, ok bool)

	// Contains reports presence without promoting.
	Contains(key K) bool

	// Set inserts or replaces key and promotes it.
	Set(key K, value V)

	// Delete removes key. Returns a *KeyNotFoundError when absent.
	Delete(key K) error

	// GetOrLoad returns the cached value for key, or invokes load once,
	// stores its result, and returns it. A load failure propagates and
	// nothing is cached.
	GetOrLoad(key K, load func() (V, error)) (V, error)

	// Clear empties the store.
	Clear()

	Len() int
	Keys() []K
	Values() []V
	Items() []Item[K, V]

	// Trim evicts least-recently-used entries until the encoded snapshot
	// fits MaxBytes (and the entry count fits MaxItems, when set).
	// Returns the number of entries evicted.
	Trim() (int, error)

	// ByteSize returns the byte length a Save would write right now.
	ByteSize() (int64, error)

	// Dirty reports whether the store diverged from its last load/save.
	Dirty() bool

	// Path returns the backing path, or "" for a memory-only cache.
	Path() string

	// Save trims, then persists the store to the backing path. No-op when
	// the store is clean; ErrNoBackingPath for memory-only caches.
	Save() error

	// Close is Save; pair it with construction (defer c.Close()).
	Close() error
}

// Item is one (key, value) pair in recency order.
type Item[K comparable, V any] struct {
	Key   K
	Value V
}

// Options tune a cache. All fields are optional; the zero value is a
// memory-only cache with a 1 GiB snapshot budget and CBOR codecs.
type Options[K comparable, V any] struct {
	// Path is the backing file. Empty means memory-only: Save and Close
	// return ErrNoBackingPath and SaveOnExit is rejected.
	Path string

	MaxItems int   // entry-count cap enforced by Trim; 0 => unbounded
	MaxBytes int64 // snapshot byte budget; 0 => DefaultMaxBytes

	// KeyCodec must be byte-stable per value (equal keys => equal bytes).
	// nil => canonical CBOR.
	KeyCodec c.Codec[K]
	// ValueCodec serializes values. nil => CBOR.
	ValueCodec c.Codec[V]

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	// SaveOnExit registers the cache with Registry (DefaultRegistry when
	// nil) so a shutdown-time CloseAll flushes it. Requires Path.
	SaveOnExit bool
	Registry   *Registry
}

// New builds a cache and, when Path is set, loads the existing snapshot.
// A missing snapshot file yields an empty cache; a corrupt one is an error
// (no silent empty start over lost data).
func New[K comparable, V any](opts Options[K, V]) (Cache[K, V], error) {
	return newCache(opts)
}

// Open is the common case: a persistent cache at path that is flushed by
// CloseAll at shutdown.
func Open[K comparable, V any](path string) (Cache[K, V], error) {
	if path == "" {
		return nil, fmt.Errorf("lrudisk: open requires a path")
	}
	return New(Options[K, V]{Path: path, SaveOnExit: true})
}
