package cache

import "sync"

// Locked serializes every call to an LFU behind one mutex.
//
// Get mutates usage counts, so there is no read-locked fast path: all
// methods take the exclusive lock. Eviction listeners run with the lock
// held and must not call back into the cache.
type Locked[K comparable, V any] struct {
	mu sync.Mutex
	c  *LFU[K, V]
}

// NewLocked constructs an LFU and wraps it.
func NewLocked[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Locked[K, V], error) {
	c, err := New[K, V](cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Locked[K, V]{c: c}, nil
}

func (l *Locked[K, V]) Put(key K, value V) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Put(key, value)
}

func (l *Locked[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Get(key)
}

func (l *Locked[K, V]) Peek(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Peek(key)
}

func (l *Locked[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Len()
}

func (l *Locked[K, V]) Cap() int {
	return l.c.Cap()
}

func (l *Locked[K, V]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Stats()
}

func (l *Locked[K, V]) Snapshot() []Entry[K, V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Snapshot()
}

// Close is safe to call multiple times.
func (l *Locked[K, V]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Close()
}
