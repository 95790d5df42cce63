package graph

import (
	"bytes"
	"fmt"
)

// ErrDuplicateID is returned when Insert is called with an ID that already
// identifies a live item and RemoveEnabled is false, so the upsert/version
// protocol below has no tombstone to fall back on.
var ErrDuplicateID = fmt.Errorf("graph: id already exists")

// ErrStaleVersion is returned by Insert when item.Version is older than the
// version already recorded for its ID — either a still-live node's version
// or a tombstone left by a prior Remove — and by Remove when the requested
// version is older than the live node's own version. Either way the graph
// is left untouched.
var ErrStaleVersion = fmt.Errorf("graph: stale version")

// Insert adds item to the graph, following spec.md §4.7's protocol: a
// per-item lock serializes concurrent inserts of the same ID, a brief hold
// of the global lock resolves the duplicate/version/tombstone checks and
// reserves a node slot, and the expensive graph-linking work runs without
// the global lock (the per-item lock stays held until Insert returns) so
// it can proceed in parallel with inserts of other IDs and with readers.
//
// If id is currently live: a lower item.Version than the stored node's is
// rejected with ErrStaleVersion; a byte-identical vector is an in-place
// upsert (the stored node's item reference is atomically replaced, size
// unchanged); any other vector soft-deletes the stored node (tombstoning
// it at its own version) and falls through to insert a fresh node under
// the same ID. If id is absent but tombstoned at a version newer than
// item.Version, the insert is rejected with ErrStaleVersion; otherwise any
// tombstone for id is cleared as part of publishing the new node.
func (g *Graph[K, V]) Insert(item Item[K, V]) error {
	idLock := g.locks.lockFor(item.ID)
	idLock.Lock()
	defer idLock.Unlock()

	idBytes, err := g.cfg.IDCodec.Encode(item.ID)
	if err != nil {
		return fmt.Errorf("graph: encode id: %w", err)
	}
	level := assignLevel(idBytes, g.lambda, g.cfg.MaxLevel)

	g.mu.Lock()

	if existingIdx, ok := g.lookup.get(item.ID); ok {
		existing := g.store.at(existingIdx)
		if existing != nil && !existing.Deleted() {
			if !g.cfg.RemoveEnabled {
				g.mu.Unlock()
				return ErrDuplicateID
			}

			storedItem := existing.Item()
			storedVersion := int64(0)
			if storedItem != nil {
				storedVersion = storedItem.Version
				if item.Version < storedVersion {
					g.mu.Unlock()
					return ErrStaleVersion
				}

				same, err := g.vectorBytesEqual(storedItem.Vector, item.Vector)
				if err != nil {
					g.mu.Unlock()
					return err
				}
				if same {
					existing.item.Store(&item)
					g.mu.Unlock()
					return nil
				}
			}

			g.tombstoneForInsert(existingIdx, existing, storedVersion)
		}
	} else if tombstoneVer, ok := g.lookup.tombstoneVersion(item.ID); ok && tombstoneVer > item.Version {
		g.mu.Unlock()
		return ErrStaleVersion
	}

	node := newNode[K, V](item.ID, level, &item)
	idx := g.store.append(node)
	g.lookup.set(item.ID, idx)
	g.lookup.clearTombstone(item.ID)
	ep := g.entryPoint
	maxLevel := g.maxLevel
	first := ep < 0
	if first {
		g.entryPoint = idx
		g.maxLevel = level
	}
	g.mu.Unlock()

	if first {
		return nil
	}

	g.excluded.add(idx)
	defer g.excluded.remove(idx)

	// Greedy descent from the snapshotted entry point down to node's own
	// level.
	current := ep
	if level < maxLevel {
		current = g.greedyDescent(item.Vector, ep, maxLevel, level)
	}

	// From min(maxLevel, level) down to 0, search with efConstruction,
	// select neighbors with the diversity heuristic, and connect
	// bidirectionally, pruning any neighbor that overflows its cap.
	top := level
	if maxLevel < top {
		top = maxLevel
	}
	for lvl := top; lvl >= 0; lvl-- {
		found := g.searchBaseLayer(item.Vector, current, g.cfg.EfConstruction, lvl)
		selected := g.selectNeighborsHeuristic(item.Vector, found, g.cfg.M)
		g.mutualConnect(idx, selected, lvl)
		if len(selected) > 0 {
			current = selected[0].id
		}
	}

	// If this node's level exceeds every previously seen level, promote it
	// to entry point.
	g.mu.Lock()
	if level > g.maxLevel {
		g.entryPoint = idx
		g.maxLevel = level
	}
	g.mu.Unlock()

	return nil
}

// tombstoneForInsert marks idx deleted and records its tombstone at
// version, mid-way through an Insert that is about to replace it with a
// fresh node under the same ID. Must be called with the global lock held;
// the caller still holds the lock afterward.
func (g *Graph[K, V]) tombstoneForInsert(idx int32, node *Node[K, V], version int64) {
	node.markDeleted()
	node.item.Store(nil)
	g.lookup.setTombstone(node.ID(), version)
	g.lookup.delete(node.ID())
	if idx == g.entryPoint {
		g.reassignEntryPoint(idx)
	}
}

// vectorBytesEqual reports whether a and b encode to the same bytes under
// the graph's ItemCodec — spec.md §4.7 step 3's "byte-equal" upsert check,
// which a raw distance-zero comparison can't express (a zero-distance
// metric like cosine can hold for vectors that are not byte-identical).
func (g *Graph[K, V]) vectorBytesEqual(a, b V) (bool, error) {
	ab, err := g.cfg.ItemCodec.Encode(a)
	if err != nil {
		return false, fmt.Errorf("graph: encode vector: %w", err)
	}
	bb, err := g.cfg.ItemCodec.Encode(b)
	if err != nil {
		return false, fmt.Errorf("graph: encode vector: %w", err)
	}
	return bytes.Equal(ab, bb), nil
}
