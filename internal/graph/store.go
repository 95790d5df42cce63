package graph

import "sync/atomic"

// store is the node store: a dense, append-only array of node slots
// indexed by int32. Slots are never reused or compacted, even after a
// soft-delete, so an index captured at insert time remains valid for the
// lifetime of the graph (spec.md's node-store invariant).
//
// Reads of existing slots use atomic.Pointer so that search traversals
// (via at) can run without the graph's global lock; only append and resize touch
// the backing slice itself and those are always called with the global
// lock held (spec.md §5).
type store[K comparable, V any] struct {
	slots []atomic.Pointer[Node[K, V]]
	n     int // number of slots actually in use
}

func newStore[K comparable, V any](capHint int) *store[K, V] {
	return &store[K, V]{slots: make([]atomic.Pointer[Node[K, V]], capHint)}
}

func (s *store[K, V]) cap() int { return len(s.slots) }

func (s *store[K, V]) len() int { return s.n }

// append adds node to the next free slot, growing the backing array if
// necessary. Must be called with the graph's global lock held.
func (s *store[K, V]) append(node *Node[K, V]) int32 {
	if s.n == len(s.slots) {
		s.grow()
	}
	idx := int32(s.n)
	s.slots[idx].Store(node)
	s.n++
	return idx
}

func (s *store[K, V]) grow() {
	newCap := len(s.slots) * 2
	if newCap == 0 {
		newCap = 16
	}
	grown := make([]atomic.Pointer[Node[K, V]], newCap)
	for i := 0; i < s.n; i++ {
		grown[i].Store(s.slots[i].Load())
	}
	s.slots = grown
}

// resize grows the store's capacity to at least n slots. Must be called
// with the global lock held.
func (s *store[K, V]) resize(n int) {
	if n <= len(s.slots) {
		return
	}
	grown := make([]atomic.Pointer[Node[K, V]], n)
	for i := 0; i < s.n; i++ {
		grown[i].Store(s.slots[i].Load())
	}
	s.slots = grown
}

// at returns the node at idx, or nil if idx is out of range or the slot is
// unset. Safe to call without the global lock.
func (s *store[K, V]) at(idx int32) *Node[K, V] {
	if idx < 0 || int(idx) >= len(s.slots) {
		return nil
	}
	return s.slots[idx].Load()
}

// each invokes fn for every non-nil node slot in index order, tombstoned
// nodes included; callers that want live nodes only check Deleted().
// Safe to call without the global lock for a point-in-time, best-effort
// snapshot; callers that need a linearizable view take the global lock
// themselves (spec.md §5 names Items/Size as global-lock operations).
func (s *store[K, V]) each(fn func(idx int32, n *Node[K, V])) {
	for i := 0; i < s.n; i++ {
		n := s.slots[i].Load()
		if n == nil {
			continue
		}
		fn(int32(i), n)
	}
}
