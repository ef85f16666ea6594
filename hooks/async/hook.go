// Package asynchook decouples slow hook sinks from cache operations.
// Events are queued and delivered by worker goroutines; when the queue is
// full, events are dropped rather than blocking the cache.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{EvictEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := lrudisk.New[string, Result](lrudisk.Options[string, Result]{
//	    Path:  "/var/cache/app/results.lru",
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/lrudisk"
)

type Hooks struct {
	inner lrudisk.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ lrudisk.Hooks = (*Hooks)(nil)

func New(inner lrudisk.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntriesEvicted(n int) { h.try(func() { h.inner.EntriesEvicted(n) }) }
func (h *Hooks) SnapshotSaved(path string, items int, size int64) {
	h.try(func() { h.inner.SnapshotSaved(path, items, size) })
}
func (h *Hooks) SnapshotLoaded(path string, items int, size int64) {
	h.try(func() { h.inner.SnapshotLoaded(path, items, size) })
}
func (h *Hooks) SaveSkipped(path, reason string) { h.try(func() { h.inner.SaveSkipped(path, reason) }) }
