package graph

import (
	"errors"
	"fmt"
	"sync"
)

// defaultMaxLevel caps the number of levels a node can be assigned, so a
// pathological hash can't allocate an unbounded number of adjacency lists
// for one node.
const defaultMaxLevel = 32

// Config carries the construction-time parameters of a Graph. All fields
// are validated in New; there is no external Option machinery at this
// layer (the public functional options live in the root package and are
// translated into one of these before the graph is built).
type Config[K comparable, V any] struct {
	M              int
	EfConstruction int
	EfSearch       int
	MaxLevel       int
	RemoveEnabled  bool
	Distance       DistanceFunc[V]
	IDCodec        IDCodec[K]
	ItemCodec      ItemCodec[V]
}

func (c Config[K, V]) validate() error {
	if c.M <= 0 {
		return errors.New("graph: M must be positive")
	}
	if c.EfConstruction <= 0 {
		return errors.New("graph: EfConstruction must be positive")
	}
	if c.EfSearch <= 0 {
		return errors.New("graph: EfSearch must be positive")
	}
	if c.Distance == nil {
		return errors.New("graph: Distance function is required")
	}
	if c.IDCodec == nil {
		return errors.New("graph: IDCodec is required")
	}
	return nil
}

// Graph is the HNSW engine: the hierarchical proximity graph plus the
// concurrency and resource-pooling machinery spec.md §5 requires. It knows
// nothing about persistence encoding (format.go/persistence.go) or the
// public facade (root package) beyond the capabilities it was configured
// with.
type Graph[K comparable, V any] struct {
	cfg    Config[K, V]
	lambda float64

	mu         sync.Mutex // global lock: Get/Size/Items/Contains/Remove/Resize/entry-point swaps
	store      *store[K, V]
	lookup     *lookup[K]
	locks      *itemLocks[K]
	excluded   *excluded
	visited    *visitedPool
	entryPoint int32 // -1 when the graph is empty
	maxLevel   int
}

// New builds an empty Graph from cfg.
func New[K comparable, V any](cfg Config[K, V]) (*Graph[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxLevel <= 0 {
		cfg.MaxLevel = defaultMaxLevel
	}
	return &Graph[K, V]{
		cfg:        cfg,
		lambda:     levelLambda(cfg.M),
		store:      newStore[K, V](64),
		lookup:     newLookup[K](64),
		locks:      newItemLocks[K](),
		excluded:   newExcluded(),
		visited:    newVisitedPool(),
		entryPoint: -1,
		maxLevel:   -1,
	}, nil
}

// Size returns the number of non-tombstoned items in the graph.
func (g *Graph[K, V]) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	g.store.each(func(_ int32, nd *Node[K, V]) {
		if !nd.Deleted() {
			n++
		}
	})
	return n
}

// Len returns the total number of node slots ever created, including
// tombstoned ones.
func (g *Graph[K, V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.len()
}

// Contains reports whether id currently identifies a live (non-tombstoned)
// item.
func (g *Graph[K, V]) Contains(id K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx, ok := g.lookup.get(id)
	if !ok {
		return false
	}
	n := g.store.at(idx)
	return n != nil && !n.Deleted()
}

// Get returns the item currently stored under id, if any.
func (g *Graph[K, V]) Get(id K) (Item[K, V], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx, ok := g.lookup.get(id)
	if !ok {
		return Item[K, V]{}, false
	}
	n := g.store.at(idx)
	if n == nil || n.Deleted() {
		return Item[K, V]{}, false
	}
	it := n.Item()
	if it == nil {
		return Item[K, V]{}, false
	}
	return *it, true
}

// Items calls fn for every live item in the graph. fn must not call back
// into the graph.
func (g *Graph[K, V]) Items(fn func(Item[K, V])) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.each(func(_ int32, n *Node[K, V]) {
		if n.Deleted() {
			return
		}
		if it := n.Item(); it != nil {
			fn(*it)
		}
	})
}

// Resize grows the graph's node-store capacity to at least n slots, ahead
// of a bulk insert whose final size is known. A no-op if n is smaller than
// the current capacity.
func (g *Graph[K, V]) Resize(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.resize(n)
}

func (g *Graph[K, V]) entry() (int32, *Node[K, V]) {
	g.mu.Lock()
	ep := g.entryPoint
	g.mu.Unlock()
	if ep < 0 {
		return -1, nil
	}
	return ep, g.store.at(ep)
}

func (g *Graph[K, V]) distanceTo(q V, idx int32) (float64, error) {
	n := g.store.at(idx)
	if n == nil {
		return 0, fmt.Errorf("graph: dangling node index %d", idx)
	}
	it := n.Item()
	if it == nil {
		return topInf, nil
	}
	return g.cfg.Distance(q, it.Vector), nil
}
