package graph

import "fmt"

// ErrNotFound is returned when Remove is called for an ID that is not
// currently live.
var ErrNotFound = fmt.Errorf("graph: id not found")

// ErrRemoveDisabled is returned when Remove is called on a graph
// constructed with RemoveEnabled set to false.
var ErrRemoveDisabled = fmt.Errorf("graph: remove is disabled for this graph")

// Remove soft-deletes id, gated on version: spec.md §4.8 replaces the
// teacher's hard physical unlink-and-reconnect scheme with a tombstone,
// because a deleted node must stay graph-reachable (invariant 5) so that
// traversals passing through it can still reach its neighbors. The node's
// adjacency lists are left untouched; only its "deleted" flag is set and
// its item payload is released. If the stored node's own version is
// strictly greater than version, the graph is left untouched and
// ErrStaleVersion is returned; otherwise the tombstone records (id,
// version) — the caller-supplied version, not necessarily the item's own —
// so a later Insert under the same ID can tell whether it is newer.
func (g *Graph[K, V]) Remove(id K, version int64) error {
	if !g.cfg.RemoveEnabled {
		return ErrRemoveDisabled
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	idx, ok := g.lookup.get(id)
	if !ok {
		return ErrNotFound
	}
	node := g.store.at(idx)
	if node == nil || node.Deleted() {
		return ErrNotFound
	}

	if item := node.Item(); item != nil && item.Version > version {
		return ErrStaleVersion
	}

	node.markDeleted()
	node.item.Store(nil)

	g.lookup.setTombstone(id, version)
	g.lookup.delete(id)

	if idx == g.entryPoint {
		g.reassignEntryPoint(idx)
	}

	return nil
}

// reassignEntryPoint picks a replacement entry point after the current one
// was tombstoned, preferring the highest-level live node. Must be called
// with the global lock held.
func (g *Graph[K, V]) reassignEntryPoint(excludeIdx int32) {
	best := int32(-1)
	bestLevel := -1
	g.store.each(func(idx int32, n *Node[K, V]) {
		if idx == excludeIdx || n.Deleted() {
			return
		}
		if n.Level() > bestLevel {
			bestLevel = n.Level()
			best = idx
		}
	})
	g.entryPoint = best
	g.maxLevel = bestLevel
}
