package graph

// BruteForceNearest scans every live item and returns the k closest,
// without touching the graph's adjacency lists at all. This is spec.md
// §4.10's exact companion: grounded on the teacher's internal/index/flat
// package, generalized to share this graph's own node store and lookup
// instead of keeping a second, independent copy of every vector.
func (g *Graph[K, V]) BruteForceNearest(query V, k int) []SearchResult[K, V] {
	g.mu.Lock()
	defer g.mu.Unlock()

	best := newMaxHeap(k + 1)
	idxOf := make(map[int32]*Item[K, V], k+1)

	g.store.each(func(idx int32, n *Node[K, V]) {
		if n.Deleted() {
			return
		}
		item := n.Item()
		if item == nil {
			return
		}
		d := g.cfg.Distance(query, item.Vector)
		if best.Len() < k || d < best.top().distance {
			best.push(candidate{id: idx, distance: d})
			idxOf[idx] = item
			if best.Len() > k {
				evicted := best.pop()
				delete(idxOf, evicted.id)
			}
		}
	})

	out := make([]SearchResult[K, V], best.Len())
	for i := len(out) - 1; i >= 0; i-- {
		c := best.pop()
		out[i] = SearchResult[K, V]{Item: *idxOf[c.id], Distance: c.distance}
	}
	return out
}
