package graph

// lookup maps external IDs to node-store indices and holds the tombstone
// table (ID -> version) spec.md §3 and §9 describe. Keyed by external ID
// rather than by index, per DESIGN.md Open Question 2: a version bump on
// re-insertion after a delete must be visible to anyone still holding the
// old ID, regardless of which store slot eventually backs it.
type lookup[K comparable] struct {
	byID      map[K]int32
	tombstone map[K]int64 // ID -> version of the item that was deleted
}

func newLookup[K comparable](capHint int) *lookup[K] {
	return &lookup[K]{
		byID:      make(map[K]int32, capHint),
		tombstone: make(map[K]int64),
	}
}

func (l *lookup[K]) get(id K) (int32, bool) {
	idx, ok := l.byID[id]
	return idx, ok
}

func (l *lookup[K]) set(id K, idx int32) { l.byID[id] = idx }

func (l *lookup[K]) delete(id K) { delete(l.byID, id) }

func (l *lookup[K]) tombstoneVersion(id K) (int64, bool) {
	v, ok := l.tombstone[id]
	return v, ok
}

func (l *lookup[K]) setTombstone(id K, version int64) { l.tombstone[id] = version }

func (l *lookup[K]) clearTombstone(id K) { delete(l.tombstone, id) }

func (l *lookup[K]) len() int { return len(l.byID) }
