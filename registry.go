package lrudisk

import (
	"errors"
	"sync"
	"weak"
)

type closer interface {
	Close() error
}

// Registry tracks live caches that opted into save-on-exit. Members are
// held through weak pointers: the registry never extends a cache's
// lifetime, and a cache collected before shutdown is skipped silently.
//
// Go has no atexit; the embedder calls CloseAll from its shutdown path
// (defer in main, or a signal handler). The registry starts empty and is
// safe for concurrent registration, but CloseAll calls into caches without
// synchronization - flush after cache users have stopped.
type Registry struct {
	mu   sync.Mutex
	next uint64
	live map[uint64]func() closer
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[uint64]func() closer)}
}

// DefaultRegistry receives caches built with Options.SaveOnExit and a nil
// Registry.
var DefaultRegistry = NewRegistry()

// CloseAll flushes every cache registered with DefaultRegistry.
func CloseAll() error { return DefaultRegistry.CloseAll() }

func (r *Registry) add(resolve func() closer) {
	r.mu.Lock()
	r.live[r.next] = resolve
	r.next++
	r.mu.Unlock()
}

// Len counts registered caches that are still reachable.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, resolve := range r.live {
		if resolve() != nil {
			n++
		}
	}
	return n
}

// CloseAll closes every registered cache still alive and drops entries
// whose cache has been collected. ErrNoBackingPath cannot occur here
// (registration requires a path); any other save failure is joined into
// the returned error, and remaining caches are still flushed.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	resolvers := make(map[uint64]func() closer, len(r.live))
	for id, resolve := range r.live {
		resolvers[id] = resolve
	}
	r.mu.Unlock()

	var errs []error
	for id, resolve := range resolvers {
		cc := resolve()
		if cc == nil {
			r.mu.Lock()
			delete(r.live, id)
			r.mu.Unlock()
			continue
		}
		if err := cc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// registerCache adds c to r behind a weak pointer. The strong reference
// stays with the caller of New; once that is gone the entry resolves nil.
func registerCache[K comparable, V any](r *Registry, c *cache[K, V]) {
	wp := weak.Make(c)
	r.add(func() closer {
		if p := wp.Value(); p != nil {
			return p
		}
		return nil
	})
}
