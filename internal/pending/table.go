// ABOUTME: Thread-safe TTL table for correlating in-flight requests by id.
// ABOUTME: Expired entries are evicted by a background sweep and handed to a callback.

package pending

import (
	"container/list"
	"sync"
	"time"
)

// tableEntry stores the value, insertion time, and list element for a key.
type tableEntry[K comparable, V any] struct {
	key       K
	value     V
	timestamp time.Time
	element   *list.Element
}

// Table holds in-flight values keyed by id. Entries older than the TTL are
// removed by a background goroutine and passed to the expiry callback.
// Uses a doubly-linked list in insertion order for cheap expiry scans.
type Table[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*tableEntry[K, V]
	order    *list.List // entries in insertion order (oldest at front)
	ttl      time.Duration
	onExpire func(K, V)
	done     chan struct{}
	closed   bool
}

// New creates a table whose entries expire after ttl. The sweep runs every
// interval; onExpire may be nil.
func New[K comparable, V any](ttl, interval time.Duration, onExpire func(K, V)) *Table[K, V] {
	if interval <= 0 {
		interval = time.Second
	}
	t := &Table[K, V]{
		entries:  make(map[K]*tableEntry[K, V]),
		order:    list.New(),
		ttl:      ttl,
		onExpire: onExpire,
		done:     make(chan struct{}),
	}
	go t.cleanup(interval)
	return t
}

// Put inserts value under key. Returns false if key is already present.
func (t *Table[K, V]) Put(key K, value V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[key]; exists {
		return false
	}

	e := &tableEntry[K, V]{key: key, value: value, timestamp: time.Now()}
	e.element = t.order.PushBack(e)
	t.entries[key] = e
	return true
}

// Remove deletes key and returns its value. Only one caller can ever
// receive a given entry.
func (t *Table[K, V]) Remove(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	t.removeLocked(e)
	return e.value, true
}

// RemoveFunc deletes every entry for which match returns true and returns
// the removed values in insertion order.
func (t *Table[K, V]) RemoveFunc(match func(K, V) bool) []V {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []V
	for elem := t.order.Front(); elem != nil; {
		next := elem.Next()
		e, _ := elem.Value.(*tableEntry[K, V])
		if match(e.key, e.value) {
			t.removeLocked(e)
			removed = append(removed, e.value)
		}
		elem = next
	}
	return removed
}

// Len returns the number of entries currently held.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// removeLocked unlinks e. Must be called with mu held.
func (t *Table[K, V]) removeLocked(e *tableEntry[K, V]) {
	t.order.Remove(e.element)
	delete(t.entries, e.key)
}

// cleanup runs in a background goroutine, periodically evicting expired entries.
func (t *Table[K, V]) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.runCleanup()
		case <-t.done:
			return
		}
	}
}

// runCleanup removes all expired entries and invokes onExpire for each,
// outside the lock.
func (t *Table[K, V]) runCleanup() {
	t.mu.Lock()
	now := time.Now()
	var expired []*tableEntry[K, V]
	for elem := t.order.Front(); elem != nil; {
		e, _ := elem.Value.(*tableEntry[K, V])
		if now.Sub(e.timestamp) < t.ttl {
			break
		}
		next := elem.Next()
		t.removeLocked(e)
		expired = append(expired, e)
		elem = next
	}
	t.mu.Unlock()

	if t.onExpire == nil {
		return
	}
	for _, e := range expired {
		t.onExpire(e.key, e.value)
	}
}

// Close stops the background cleanup goroutine. It is safe to call multiple times.
func (t *Table[K, V]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.closed {
		close(t.done)
		t.closed = true
	}
}
