// Package livecache keeps in-memory mirrors of hot tables for the realtime
// dashboard. The cached copy is possibly stale and never a source of truth;
// it only exists so counters do not hit the database on every tick.
package livecache

import "sync"

// Collection is a set of entities keyed by id. Both the optimistic write
// path and the change-feed path go through Merge, which is idempotent:
// insert if absent, overwrite if present. Convergence is last write wins —
// there is no version field to detect conflicting concurrent edits.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[int]T
	id    func(T) int
}

// NewCollection creates a Collection using id to key items.
func NewCollection[T any](id func(T) int) *Collection[T] {
	return &Collection[T]{
		items: make(map[int]T),
		id:    id,
	}
}

// Merge inserts the item if its id is absent, otherwise overwrites it.
func (c *Collection[T]) Merge(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.id(item)] = item
}

// Remove deletes the item with the given id, if present.
func (c *Collection[T]) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
}

// Get returns the item with the given id.
func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of cached items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Count returns how many cached items satisfy pred.
func (c *Collection[T]) Count(pred func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, item := range c.items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of all cached items in unspecified order.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	return out
}
