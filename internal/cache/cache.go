package cache

import (
	"container/list"
	"errors"
	"fmt"
)

// Config controls cache capacity and eviction behavior.
//
// Capacity must be positive; there is no "unbounded" mode.
// The zero TieBreak is TieBreakNewest.
type Config struct {
	Capacity int
	TieBreak TieBreak
}

// Option customizes an LFU at construction time.
type Option[K comparable, V any] func(*LFU[K, V])

// WithEvictionListener registers fn to be told about every eviction.
//
// fn runs synchronously inside Put, after the victim is chosen and before it
// is removed. It must not call back into the cache.
func WithEvictionListener[K comparable, V any](fn func(key K, value V, uses int)) Option[K, V] {
	return func(c *LFU[K, V]) {
		c.onEvict = fn
	}
}

// WithCopy makes the cache copy values on the way in (Put) and on the way out
// (Get, Peek, Snapshot), so callers never share mutable storage with it.
func WithCopy[K comparable, V any](fn func(V) V) Option[K, V] {
	return func(c *LFU[K, V]) {
		c.copyFn = fn
	}
}

// LFU is a fixed-capacity key–value cache with least-frequently-used eviction.
//
// A map gives O(1) key lookup; a doubly-linked list records insertion order.
// Usage counts live on the entries and never move them in the list.
//
// LFU is not safe for concurrent use; see Locked.
type LFU[K comparable, V any] struct {
	capacity int
	tieBreak TieBreak

	items map[K]*list.Element
	order *list.List // Front = most recently inserted, Back = least recently inserted

	onEvict func(key K, value V, uses int)
	copyFn  func(V) V

	stats  Stats
	closed bool
}

// entry is the value stored in the insertion-order list elements.
// We keep the key here because eviction starts from list nodes.
type entry[K comparable, V any] struct {
	key   K
	value V
	uses  int
}

// Entry is a read-only view of one cached record, as returned by Snapshot.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	Uses  int
}

var (
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")
	ErrInvalidTieBreak = errors.New("cache: unknown tie-break policy")
	ErrAllocation      = errors.New("cache: entry allocation failed")
	ErrClosed          = errors.New("cache is closed")
)

// New constructs an empty cache.
//
// It fails with ErrInvalidCapacity when cfg.Capacity <= 0.
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*LFU[K, V], error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.Capacity)
	}
	if !cfg.TieBreak.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTieBreak, int(cfg.TieBreak))
	}

	c := &LFU[K, V]{
		capacity: cfg.Capacity,
		tieBreak: cfg.TieBreak,
		items:    make(map[K]*list.Element, cfg.Capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases every entry. The cache cannot be used afterwards.
//
// Close is safe to call multiple times.
func (c *LFU[K, V]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.items = nil
	c.order.Init()
	return nil
}

// Put inserts key or replaces its value.
//
// Updating an existing key bumps its usage count and never evicts.
// Inserting a new key at capacity evicts exactly one entry first.
//
// If the new entry cannot be built, Put returns an error wrapping
// ErrAllocation and the cache is left exactly as it was.
func (c *LFU[K, V]) Put(key K, value V) error {
	if c.closed {
		return ErrClosed
	}

	if el, ok := c.items[key]; ok {
		v, err := c.copyIn(value)
		if err != nil {
			return fmt.Errorf("update %v: %w", key, err)
		}
		e := el.Value.(*entry[K, V])
		e.value = v
		e.uses++
		c.stats.Updates++
		return nil
	}

	// Build the replacement before touching the victim.
	e, err := c.newEntry(key, value)
	if err != nil {
		return fmt.Errorf("insert %v: %w", key, err)
	}

	if len(c.items) >= c.capacity {
		c.evict()
	}

	c.items[key] = c.order.PushFront(e)
	c.stats.Inserts++
	return nil
}

// Get reads a key and counts the read as a use.
//
// Insertion order is not affected.
func (c *LFU[K, V]) Get(key K) (V, bool) {
	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	e := el.Value.(*entry[K, V])
	e.uses++
	c.stats.Hits++
	return c.copyOut(e.value), true
}

// Peek reads a key without counting it as a use.
func (c *LFU[K, V]) Peek(key K) (V, bool) {
	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.copyOut(el.Value.(*entry[K, V]).value), true
}

// Len returns the number of live entries.
func (c *LFU[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the configured capacity.
func (c *LFU[K, V]) Cap() int {
	return c.capacity
}

// TieBreak returns the configured tie-break policy.
func (c *LFU[K, V]) TieBreak() TieBreak {
	return c.tieBreak
}

// Stats returns a copy of the operation counters.
func (c *LFU[K, V]) Stats() Stats {
	return c.stats
}

// Snapshot returns every entry in most-recently-inserted-first order.
//
// This is a debug helper; it does not count as a use.
func (c *LFU[K, V]) Snapshot() []Entry[K, V] {
	out := make([]Entry[K, V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		out = append(out, Entry[K, V]{Key: e.key, Value: c.copyOut(e.value), Uses: e.uses})
	}
	return out
}

// evict removes exactly one minimum-count entry.
func (c *LFU[K, V]) evict() {
	el := c.victim()
	if el == nil {
		return
	}
	e := el.Value.(*entry[K, V])
	if c.onEvict != nil {
		c.onEvict(e.key, e.value, e.uses)
	}
	delete(c.items, e.key)
	c.order.Remove(el)
	c.stats.Evictions++
}

// victim walks the list from the end the tie-break favours and keeps the
// first entry holding the smallest count.
func (c *LFU[K, V]) victim() *list.Element {
	first, step := c.order.Front(), (*list.Element).Next
	if c.tieBreak == TieBreakOldest {
		first, step = c.order.Back(), (*list.Element).Prev
	}

	lfu := first
	for el := first; el != nil; el = step(el) {
		if el.Value.(*entry[K, V]).uses < lfu.Value.(*entry[K, V]).uses {
			lfu = el
		}
	}
	return lfu
}

func (c *LFU[K, V]) newEntry(key K, value V) (*entry[K, V], error) {
	v, err := c.copyIn(value)
	if err != nil {
		return nil, err
	}
	return &entry[K, V]{key: key, value: v, uses: 1}, nil
}

// copyIn runs the configured copy function, turning a panic (for example an
// impossible slice length) into ErrAllocation.
func (c *LFU[K, V]) copyIn(value V) (v V, err error) {
	if c.copyFn == nil {
		return value, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return c.copyFn(value), nil
}

func (c *LFU[K, V]) copyOut(value V) V {
	if c.copyFn == nil {
		return value
	}
	return c.copyFn(value)
}

// CloneBytes is a copy function for []byte values, for use with WithCopy.
func CloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
