package graph

// greedyDescent walks down from the entry point through every level above
// targetLevel, repeatedly moving to the closest neighbor at each level
// until no neighbor is closer than the current node (ef=1).
// This is the "find a good starting point for the next level" phase
// spec.md §4.3 describes, used both by queries (descending to level 0) and
// by Insert (descending to the new node's own level).
func (g *Graph[K, V]) greedyDescent(q V, from int32, topLevel, targetLevel int) int32 {
	current := from
	curDist, err := g.distanceTo(q, current)
	if err != nil {
		return from
	}

	for level := topLevel; level > targetLevel; level-- {
		for {
			node := g.store.at(current)
			if node == nil {
				break
			}
			improved := int32(-1)
			bestDist := curDist
			for _, nbIdx := range node.neighbors(level) {
				if g.excluded.contains(nbIdx) {
					continue
				}
				d, err := g.distanceTo(q, nbIdx)
				if err != nil {
					continue
				}
				if d < bestDist {
					bestDist = d
					improved = nbIdx
				}
			}
			if improved < 0 {
				break
			}
			current = improved
			curDist = bestDist
		}
	}
	return current
}

// searchBaseLayer is the best-first beam search of spec.md §4.4: it
// explores the graph at level starting from entry, maintaining a
// bounded-size working set of the ef best candidates seen so far, and
// terminates once the exploration frontier can no longer improve on the
// worst candidate currently held. Tombstoned nodes are still traversed
// (invariant 5: deleted nodes stay graph-reachable) but are never placed
// in the returned result set.
func (g *Graph[K, V]) searchBaseLayer(q V, entry int32, ef int, level int) []candidate {
	visited := g.visited.get(g.store.cap())
	defer g.visited.put(visited)

	entryNode := g.store.at(entry)
	if entryNode == nil {
		return nil
	}

	entryDist, err := g.distanceTo(q, entry)
	if err != nil {
		return nil
	}

	candidates := newMinHeap(ef * 2) // C: exploration frontier, closest first
	result := newMaxHeap(ef + 1)     // W: best ef found so far, furthest on top

	visited.mark(entry)
	candidates.push(candidate{id: entry, distance: entryDist})
	if !entryNode.Deleted() && !g.excluded.contains(entry) {
		result.push(candidate{id: entry, distance: entryDist})
	}

	for !candidates.empty() {
		c := candidates.pop()

		if !result.empty() && c.distance > result.top().distance && result.Len() >= ef {
			break
		}

		node := g.store.at(c.id)
		if node == nil {
			continue
		}
		for _, nbIdx := range node.neighbors(level) {
			if visited.seen(nbIdx) {
				continue
			}
			visited.mark(nbIdx)

			nb := g.store.at(nbIdx)
			if nb == nil {
				continue
			}
			d, err := g.distanceTo(q, nbIdx)
			if err != nil {
				continue
			}

			worseThanWorst := result.Len() >= ef && !result.empty() && d >= result.top().distance
			if worseThanWorst {
				continue
			}

			candidates.push(candidate{id: nbIdx, distance: d})

			if nb.Deleted() || g.excluded.contains(nbIdx) {
				continue
			}
			result.push(candidate{id: nbIdx, distance: d})
			if result.Len() > ef {
				result.pop()
			}
		}
	}

	out := make([]candidate, result.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = result.pop()
	}
	return out
}
