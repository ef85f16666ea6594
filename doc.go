// Package lrudisk implements a process-local, disk-backed LRU key/value
// cache for memoizing expensive work (network calls, slow derivations)
// across process runs.
//
// Components:
//   - Cache[K, V]: ordered key/value store; iteration order is recency
//     order (head = least recently used, tail = most recently used).
//   - codec.Codec: (de)serializes keys and values <-> []byte. CBOR by
//     default; keys use canonical CBOR so size estimates are stable.
//   - Trim: evicts oldest-first until the encoded snapshot fits MaxBytes
//     (and MaxItems when set).
//   - Save/Close: persists the trimmed store to the backing path. Loads
//     happen at construction; a missing file is an empty cache.
//   - Registry: weakly-held set of caches flushed by CloseAll, for
//     "save popular entries on normal shutdown" semantics.
//
// A Cache is not safe for concurrent use; the embedder serializes access.
// There is no file locking: two processes sharing a backing path race and
// the last writer wins.
package lrudisk
