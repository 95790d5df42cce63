package graph

// maxConnections returns the connection cap for level: level 0 gets twice
// the configured M, matching both the original HNSW paper's mMax0 = 2*M
// and the teacher's own levelMultiplier = 2.0 convention.
func (g *Graph[K, V]) maxConnections(level int) int {
	if level == 0 {
		return g.cfg.M * 2
	}
	return g.cfg.M
}

// selectNeighborsHeuristic is Algorithm 4 of the HNSW paper (the "real"
// heuristic-2, not the teacher's 80%-distance-threshold approximation):
// it greedily admits a candidate into the result set only if it is at
// least as close to the query as it is to every neighbor already
// admitted, which is what gives the graph its diversity and keeps recall
// high as the graph grows. Unlike the paper's keepPrunedConnections=true
// default, rejected candidates are discarded rather than used to pad the
// result back up to m: the result is a subset of size at most m, which is
// all callers need.
func (g *Graph[K, V]) selectNeighborsHeuristic(q V, candidates []candidate, m int) []candidate {
	if len(candidates) <= m {
		out := make([]candidate, len(candidates))
		copy(out, candidates)
		return out
	}

	w := newMinHeap(len(candidates))
	for _, c := range candidates {
		w.push(c)
	}

	result := make([]candidate, 0, m)

	for !w.empty() && len(result) < m {
		e := w.pop()

		admit := true
		eNode := g.store.at(e.id)
		var eItem *Item[K, V]
		if eNode != nil {
			eItem = eNode.Item()
		}
		for _, r := range result {
			if eItem == nil {
				break
			}
			rNode := g.store.at(r.id)
			if rNode == nil {
				continue
			}
			rItem := rNode.Item()
			if rItem == nil {
				continue
			}
			if g.cfg.Distance(eItem.Vector, rItem.Vector) < e.distance {
				admit = false
				break
			}
		}

		if admit {
			result = append(result, e)
		}
	}

	return result
}

// mutualConnect links newIdx to each of selected at level, and adds the
// reverse edge on each selected neighbor, pruning that neighbor's
// adjacency back down to its level cap via the same heuristic if the new
// edge pushed it over.
func (g *Graph[K, V]) mutualConnect(newIdx int32, selected []candidate, level int) {
	newNode := g.store.at(newIdx)
	if newNode == nil {
		return
	}

	ids := make([]int32, len(selected))
	for i, s := range selected {
		ids[i] = s.id
	}
	newNode.setNeighbors(level, ids)

	for _, s := range selected {
		nb := g.store.at(s.id)
		if nb == nil {
			continue
		}
		nb.addNeighbor(level, newIdx)
		g.pruneConnections(s.id, level)
	}
}

// pruneConnections re-applies the diversity heuristic to idx's adjacency
// list at level if it has grown past the level's cap.
func (g *Graph[K, V]) pruneConnections(idx int32, level int) {
	node := g.store.at(idx)
	if node == nil {
		return
	}
	maxM := g.maxConnections(level)
	links := node.neighbors(level)
	if len(links) <= maxM {
		return
	}

	item := node.Item()
	if item == nil {
		return
	}

	cands := make([]candidate, 0, len(links))
	for _, id := range links {
		nb := g.store.at(id)
		if nb == nil {
			continue
		}
		nbItem := nb.Item()
		if nbItem == nil {
			continue
		}
		cands = append(cands, candidate{id: id, distance: g.cfg.Distance(item.Vector, nbItem.Vector)})
	}

	selected := g.selectNeighborsHeuristic(item.Vector, cands, maxM)
	ids := make([]int32, len(selected))
	for i, s := range selected {
		ids[i] = s.id
	}
	node.setNeighbors(level, ids)
}
