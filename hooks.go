package lrudisk

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the cache calls them
// inline. Wrap with hooks/async to decouple slow sinks.
type Hooks interface {
	// Trim evicted n entries (n > 0).
	EntriesEvicted(n int)

	// A snapshot was written to path.
	SnapshotSaved(path string, items int, size int64)

	// A snapshot was read from path at construction.
	SnapshotLoaded(path string, items int, size int64)

	// Save performed no I/O.
	// reason ∈ {"clean", "no_path"}
	SaveSkipped(path, reason string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntriesEvicted(int)                 {}
func (NopHooks) SnapshotSaved(string, int, int64)   {}
func (NopHooks) SnapshotLoaded(string, int, int64)  {}
func (NopHooks) SaveSkipped(string, string)         {}
