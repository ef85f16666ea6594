// Package codec provides pluggable (de)serialization for cache keys and
// values. The encoding chosen here defines the cache's on-disk footprint:
// size estimates and the persisted snapshot both go through the same codec.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
