package lrudisk

import (
	"container/list"
	"fmt"

	c "github.com/unkn0wn-root/lrudisk/codec"
	"github.com/unkn0wn-root/lrudisk/internal/snap"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

type cache[K comparable, V any] struct {
	order    *list.List          // front = LRU, back = MRU
	index    map[K]*list.Element // element value is *entry[K,V]
	maxItems int
	maxBytes int64
	dirty    bool
	path     string
	keys     c.Codec[K]
	values   c.Codec[V]
	log      Logger
	hooks    Hooks
}

func newCache[K comparable, V any](opts Options[K, V]) (*cache[K, V], error) {
	if opts.SaveOnExit && opts.Path == "" {
		return nil, fmt.Errorf("lrudisk: SaveOnExit requires a backing path")
	}
	if opts.MaxBytes < 0 {
		return nil, fmt.Errorf("lrudisk: negative MaxBytes")
	}

	cc := &cache[K, V]{
		order:    list.New(),
		index:    make(map[K]*list.Element),
		maxItems: opts.MaxItems,
		maxBytes: coalesce(opts.MaxBytes, DefaultMaxBytes),
		path:     opts.Path,
	}

	// defaults
	cc.log = opts.Logger
	if cc.log == nil {
		cc.log = NopLogger{}
	}
	cc.hooks = opts.Hooks
	if cc.hooks == nil {
		cc.hooks = NopHooks{}
	}
	cc.keys = opts.KeyCodec
	if cc.keys == nil {
		// canonical mode: key bytes must be stable per value
		kc, err := c.NewCBOR[K](true)
		if err != nil {
			return nil, err
		}
		cc.keys = kc
	}
	cc.values = opts.ValueCodec
	if cc.values == nil {
		vc, err := c.NewCBOR[V](false)
		if err != nil {
			return nil, err
		}
		cc.values = vc
	}

	if err := cc.load(); err != nil {
		return nil, err
	}

	if opts.SaveOnExit {
		reg := opts.Registry
		if reg == nil {
			reg = DefaultRegistry
		}
		registerCache(reg, cc)
	}
	return cc, nil
}

func (c *cache[K, V]) Get(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		c.log.Debug("miss", Fields{"key": key})
		var zero V
		return zero, false
	}
	c.log.Debug("hit", Fields{"key": key})
	c.dirty = true
	c.order.MoveToBack(el)
	return el.Value.(*entry[K, V]).value, true
}

func (c *cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

func (c *cache[K, V]) Set(key K, value V) {
	c.log.Debug("set", Fields{"key": key})
	c.dirty = true
	if el, ok := c.index[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToBack(el)
		return
	}
	c.index[key] = c.order.PushBack(&entry[K, V]{key: key, value: value})
}

func (c *cache[K, V]) Delete(key K) error {
	el, ok := c.index[key]
	if !ok {
		return &KeyNotFoundError{Key: key}
	}
	c.log.Debug("delete", Fields{"key": key})
	c.dirty = true
	c.order.Remove(el)
	delete(c.index, key)
	return nil
}

func (c *cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if el, ok := c.index[key]; ok {
		c.log.Debug("hit", Fields{"key": key})
		c.dirty = true
		c.order.MoveToBack(el)
		return el.Value.(*entry[K, V]).value, nil
	}
	c.log.Debug("miss", Fields{"key": key})
	v, err := load()
	if err != nil {
		// nothing cached on failure
		var zero V
		return zero, err
	}
	c.dirty = true
	c.index[key] = c.order.PushBack(&entry[K, V]{key: key, value: v})
	return v, nil
}

func (c *cache[K, V]) Clear() {
	c.log.Debug("clear", nil)
	c.dirty = true
	c.order.Init()
	clear(c.index)
}

func (c *cache[K, V]) Len() int { return c.order.Len() }

func (c *cache[K, V]) Keys() []K {
	out := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry[K, V]).key)
	}
	return out
}

func (c *cache[K, V]) Values() []V {
	out := make([]V, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry[K, V]).value)
	}
	return out
}

func (c *cache[K, V]) Items() []Item[K, V] {
	out := make([]Item[K, V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		ent := el.Value.(*entry[K, V])
		out = append(out, Item[K, V]{Key: ent.key, Value: ent.value})
	}
	return out
}

func (c *cache[K, V]) Dirty() bool  { return c.dirty }
func (c *cache[K, V]) Path() string { return c.path }

// snapshotRecords encodes every entry oldest-first with the exact framing
// Save writes. ByteSize, Trim and Save all agree because they share it.
func (c *cache[K, V]) snapshotRecords() ([]snap.Record, error) {
	recs := make([]snap.Record, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		ent := el.Value.(*entry[K, V])
		kb, err := c.keys.Encode(ent.key)
		if err != nil {
			return nil, fmt.Errorf("lrudisk: encode key %v: %w", ent.key, err)
		}
		vb, err := c.values.Encode(ent.value)
		if err != nil {
			return nil, fmt.Errorf("lrudisk: encode value for key %v: %w", ent.key, err)
		}
		recs = append(recs, snap.Record{Key: kb, Value: vb})
	}
	return recs, nil
}

func (c *cache[K, V]) ByteSize() (int64, error) {
	recs, err := c.snapshotRecords()
	if err != nil {
		return 0, err
	}
	return snap.EncodedLen(recs), nil
}

func (c *cache[K, V]) Trim() (int, error) {
	recs, err := c.snapshotRecords()
	if err != nil {
		return 0, err
	}
	// Victim order is fixed once per call: entries promoted while this
	// loop runs would not be reconsidered.
	victims := c.Keys()

	total := snap.EncodedLen(recs)
	remaining := len(victims)
	evicted := 0
	for i := 0; i < len(victims); i++ {
		overBytes := total > c.maxBytes
		overCount := c.maxItems > 0 && remaining > c.maxItems
		if !overBytes && !overCount {
			break
		}
		if el, ok := c.index[victims[i]]; ok {
			c.order.Remove(el)
			delete(c.index, victims[i])
		}
		// snapshot size is additive over records; no re-encode needed
		total -= recs[i].Len()
		remaining--
		evicted++
	}

	if evicted > 0 {
		c.dirty = true
		c.log.Debug("trimmed items", Fields{"count": evicted})
		c.hooks.EntriesEvicted(evicted)
	}
	return evicted, nil
}
