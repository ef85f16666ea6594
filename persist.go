package lrudisk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/lrudisk/internal/snap"
)

// load replays the backing snapshot into the store; on-disk record order
// becomes the initial recency order. A missing file is an empty cache, not
// an error. A corrupt or unreadable file fails construction so callers
// never mistake lost state for a cold start.
func (c *cache[K, V]) load() error {
	if c.path == "" {
		return nil
	}

	b, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.log.Debug("no snapshot on disk", Fields{"path": c.path})
		return nil
	}
	if err != nil {
		return fmt.Errorf("lrudisk: read snapshot %s: %w", c.path, err)
	}

	recs, err := snap.Decode(b)
	if err != nil {
		return fmt.Errorf("lrudisk: decode snapshot %s: %w", c.path, err)
	}

	for _, r := range recs {
		k, err := c.keys.Decode(r.Key)
		if err != nil {
			return fmt.Errorf("lrudisk: decode key in %s: %w", c.path, err)
		}
		v, err := c.values.Decode(r.Value)
		if err != nil {
			return fmt.Errorf("lrudisk: decode value in %s: %w", c.path, err)
		}
		// duplicates should not occur in our own snapshots; last one wins
		if el, ok := c.index[k]; ok {
			c.order.Remove(el)
		}
		c.index[k] = c.order.PushBack(&entry[K, V]{key: k, value: v})
	}

	c.dirty = false
	c.log.Debug("snapshot loaded", Fields{"path": c.path, "items": len(recs), "bytes": len(b)})
	c.hooks.SnapshotLoaded(c.path, len(recs), int64(len(b)))
	return nil
}

func (c *cache[K, V]) Save() error {
	if c.path == "" {
		c.log.Error("save with no backing path", nil)
		c.hooks.SaveSkipped("", "no_path")
		return ErrNoBackingPath
	}
	if !c.dirty {
		c.log.Info("no changes to save", Fields{"path": c.path})
		c.hooks.SaveSkipped(c.path, "clean")
		return nil
	}

	// bound the persisted footprint before touching disk
	if _, err := c.Trim(); err != nil {
		return err
	}

	recs, err := c.snapshotRecords()
	if err != nil {
		return err
	}
	b := snap.Encode(recs)

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("lrudisk: create snapshot dir %s: %w", dir, err)
	}

	// write sideways, then rename over the old snapshot so readers of the
	// path never observe a partial file
	tmp, err := os.CreateTemp(dir, ".lrudisk-*")
	if err != nil {
		return fmt.Errorf("lrudisk: create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("lrudisk: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("lrudisk: close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("lrudisk: replace snapshot %s: %w", c.path, err)
	}

	c.dirty = false
	c.log.Debug("snapshot saved", Fields{"path": c.path, "items": len(recs), "bytes": len(b)})
	c.hooks.SnapshotSaved(c.path, len(recs), int64(len(b)))
	return nil
}

func (c *cache[K, V]) Close() error { return c.Save() }
