package graph

import (
	"fmt"
	"sort"
)

// FindNearest runs spec.md §4.9's two-phase query: greedy descent from the
// entry point down to level 1, then a beam search of width ef at level 0,
// returning the k closest live items.
func (g *Graph[K, V]) FindNearest(query V, k int, ef int) ([]SearchResult[K, V], error) {
	ep, epNode := g.entry()
	if epNode == nil {
		return nil, fmt.Errorf("graph: index is empty")
	}

	g.mu.Lock()
	topLevel := g.maxLevel
	g.mu.Unlock()

	entryIdx := g.greedyDescent(query, ep, topLevel, 0)
	found := g.searchBaseLayer(query, entryIdx, ef, 0)

	if len(found) > k {
		found = found[:k]
	}

	out := make([]SearchResult[K, V], 0, len(found))
	for _, c := range found {
		n := g.store.at(c.id)
		if n == nil {
			continue
		}
		item := n.Item()
		if item == nil {
			continue
		}
		out = append(out, SearchResult[K, V]{Item: *item, Distance: c.distance})
	}
	return out, nil
}

// FindNeighbors returns id's current level-0 adjacency list as search
// results, sorted closest first. Unlike FindNearest this does not run a
// new beam search: it reports the graph's own edges for id, which is
// useful for inspecting or testing graph quality directly.
func (g *Graph[K, V]) FindNeighbors(id K) ([]SearchResult[K, V], error) {
	g.mu.Lock()
	idx, ok := g.lookup.get(id)
	g.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	node := g.store.at(idx)
	if node == nil || node.Deleted() {
		return nil, ErrNotFound
	}
	item := node.Item()
	if item == nil {
		return nil, ErrNotFound
	}

	neighborIDs := node.neighbors(0)
	out := make([]SearchResult[K, V], 0, len(neighborIDs))
	for _, nIdx := range neighborIDs {
		nb := g.store.at(nIdx)
		if nb == nil || nb.Deleted() {
			continue
		}
		nbItem := nb.Item()
		if nbItem == nil {
			continue
		}
		out = append(out, SearchResult[K, V]{
			Item:     *nbItem,
			Distance: g.cfg.Distance(item.Vector, nbItem.Vector),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out, nil
}
