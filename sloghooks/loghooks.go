// Package sloghooks is a ready-made lrudisk.Hooks backed by log/slog.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/lrudisk"
)

type Options struct {
	// Sampling for eviction events to avoid floods on tight budgets;
	// 0/1 = log all.
	EvictEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictCtr atomic.Uint64
}

var _ lrudisk.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntriesEvicted(n int) {
	if h.l == nil || !sample(h.opts.EvictEvery, &h.evictCtr) {
		return
	}
	h.l.Info("lrudisk.entries_evicted", "count", n)
}

func (h *Hooks) SnapshotSaved(path string, items int, size int64) {
	if h.l == nil {
		return
	}
	h.l.Debug("lrudisk.snapshot_saved",
		"path", path,
		"items", items,
		"bytes", size)
}

func (h *Hooks) SnapshotLoaded(path string, items int, size int64) {
	if h.l == nil {
		return
	}
	h.l.Debug("lrudisk.snapshot_loaded",
		"path", path,
		"items", items,
		"bytes", size)
}

func (h *Hooks) SaveSkipped(path, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("lrudisk.save_skipped",
		"path", path,
		"reason", reason)
}
