package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// entry is a single cached item. A zero expiresAt means the item never expires.
type entry[V any] struct {
	expiresAt time.Time
	value     V
	key       string
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory Cache implementation with TTL expiration and
// optional LRU eviction when a maximum entry count is configured.
//
// Lookups are O(1) via a map; recency ordering is maintained in a
// doubly-linked list with the most recently used entries at the front.
type Memory[V any] struct {
	items   map[string]*list.Element
	order   *list.List
	opts    *memoryOptions
	onEvict func(key string, value V)
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates an in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items: make(map[string]*list.Element),
		order: list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// SetEvictCallback registers a function invoked whenever an entry leaves the
// cache: LRU eviction, expiration cleanup, Delete, and Clear all trigger it.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get retrieves a value by key and marks it as recently used.
// Returns ErrNotFound if the key is missing or expired.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}

	e := elem.Value.(*entry[V])
	if e.expired(time.Now()) {
		m.removeElement(elem)
		var zero V
		return zero, ErrNotFound
	}

	m.order.MoveToFront(elem)

	return e.value, nil
}

// Set stores a value. A positive ttl expires the entry after that duration,
// zero applies the configured default, and a negative ttl pins the entry
// until it is deleted or evicted.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		m.order.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		m.evictOldest()
	}

	elem := m.order.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
	m.items[key] = elem

	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}

	return nil
}

// Has reports whether a key exists and has not expired.
// Unlike Get, it does not refresh recency.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false, nil
	}

	if elem.Value.(*entry[V]).expired(time.Now()) {
		m.removeElement(elem)
		return false, nil
	}

	return true, nil
}

// Clear removes every entry, invoking the eviction callback for each.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for _, elem := range m.items {
			e := elem.Value.(*entry[V])
			m.onEvict(e.key, e.value)
		}
	}

	m.items = make(map[string]*list.Element)
	m.order.Init()

	return nil
}

// Close stops the janitor goroutine and rejects further writes.
// Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)

	return nil
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

// deleteExpired sweeps from the back of the recency list, where expired
// entries are most likely to cluster.
func (m *Memory[V]) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry[V]).expired(now) {
			m.removeElement(elem)
		}
		elem = prev
	}
}

// evictOldest drops the least recently used entry. Caller holds the mutex.
func (m *Memory[V]) evictOldest() {
	if elem := m.order.Back(); elem != nil {
		m.removeElement(elem)
	}
}

// removeElement unlinks an element and fires the eviction callback.
// Caller holds the mutex.
func (m *Memory[V]) removeElement(elem *list.Element) {
	m.order.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(m.items, e.key)

	if m.onEvict != nil {
		m.onEvict(e.key, e.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
