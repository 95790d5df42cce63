// Package hnswgraph is an in-memory approximate nearest-neighbor index
// built on the HNSW (Hierarchical Navigable Small World) graph algorithm:
// insertion, soft-deletion with versioning, k-NN queries under pluggable
// distance functions, concurrent mutation, and persistence.
package hnswgraph

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xDarkicex/hnswgraph/internal/graph"
	"github.com/xDarkicex/hnswgraph/internal/obs"
)

// Index is the public facade over the graph engine: it owns dimension and
// size-limit enforcement, metrics, and the functional-options-built
// Config, and delegates every structural operation to an
// internal/graph.Graph.
type Index[K comparable, V any] struct {
	g       *graph.Graph[K, V]
	cfg     Config[K, V]
	metrics *obs.Metrics

	mu        sync.Mutex
	dimension int // 0 until the first item is inserted
}

// New builds an empty Index from opts. WithDistance, WithIDCodec, and
// WithItemCodec are required; every other option has a default matching
// the teacher's own HNSW defaults (M=16, EfConstruction=200, EfSearch=64).
func New[K comparable, V any](opts ...Option[K, V]) (*Index[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("hnswgraph: apply option: %w", err)
		}
	}
	if cfg.Distance == nil {
		return nil, fmt.Errorf("hnswgraph: WithDistance is required")
	}
	if cfg.IDCodec == nil {
		return nil, fmt.Errorf("hnswgraph: WithIDCodec is required")
	}
	if cfg.ItemCodec == nil {
		return nil, fmt.Errorf("hnswgraph: WithItemCodec is required")
	}

	g, err := graph.New(graph.Config[K, V]{
		M:              cfg.M,
		EfConstruction: cfg.EfConstruction,
		EfSearch:       cfg.EfSearch,
		MaxLevel:       cfg.MaxLevel,
		RemoveEnabled:  cfg.RemoveEnabled,
		Distance:       cfg.Distance,
		IDCodec:        cfg.IDCodec,
		ItemCodec:      cfg.ItemCodec,
	})
	if err != nil {
		return nil, fmt.Errorf("hnswgraph: %w", err)
	}

	var metrics *obs.Metrics
	if cfg.MetricsEnabled {
		metrics = obs.NewMetrics()
	}

	return &Index[K, V]{g: g, cfg: cfg, metrics: metrics}, nil
}

// Add inserts item under id at version, following spec.md §4.7. Returns
// ErrDimensionMismatch if dimensions doesn't match the dimensionality of
// every other item already in the index, ErrSizeLimitExceeded if
// WithMaxSize was set and the index (live items plus tombstoned slots) is
// full, ErrDuplicateID if id is live and RemoveEnabled is false, or
// ErrStaleVersion if version is older than the version already recorded
// for id (whether still live or tombstoned). A byte-identical vector at a
// version >= the stored one is an in-place upsert; any other vector
// supersedes the stored node.
func (idx *Index[K, V]) Add(id K, vector V, dimensions int, metadata map[string]any, version int64) error {
	if err := idx.checkDimension(dimensions); err != nil {
		idx.incInsertError()
		return err
	}
	if idx.cfg.MaxSize > 0 && idx.g.Len() >= idx.cfg.MaxSize {
		idx.incInsertError()
		return ErrSizeLimitExceeded
	}

	item := Item[K, V]{ID: id, Vector: vector, Dimensions: dimensions, Metadata: metadata, Version: version}
	if err := idx.g.Insert(item); err != nil {
		idx.incInsertError()
		return err
	}

	if idx.metrics != nil {
		idx.metrics.Inserts.Inc()
		idx.metrics.GraphSize.Set(float64(idx.g.Size()))
	}
	return nil
}

func (idx *Index[K, V]) checkDimension(dimensions int) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.dimension == 0 {
		idx.dimension = dimensions
		return nil
	}
	if idx.dimension != dimensions {
		return ErrDimensionMismatch
	}
	return nil
}

func (idx *Index[K, V]) incInsertError() {
	if idx.metrics != nil {
		idx.metrics.InsertErrors.Inc()
	}
}

// Remove soft-deletes id if its stored version is <= version; otherwise
// returns ErrStaleVersion and leaves the node untouched. See
// internal/graph.Remove for the tombstone semantics.
func (idx *Index[K, V]) Remove(id K, version int64) error {
	err := idx.g.Remove(id, version)
	if idx.metrics != nil {
		if err != nil {
			idx.metrics.RemoveErrors.Inc()
		} else {
			idx.metrics.Removes.Inc()
			idx.metrics.GraphSize.Set(float64(idx.g.Size()))
		}
	}
	return err
}

// Contains reports whether id currently identifies a live item.
func (idx *Index[K, V]) Contains(id K) bool { return idx.g.Contains(id) }

// Get returns the item currently stored under id, if any.
func (idx *Index[K, V]) Get(id K) (Item[K, V], bool) { return idx.g.Get(id) }

// Size returns the number of live items in the index.
func (idx *Index[K, V]) Size() int { return idx.g.Size() }

// Items calls fn once for every live item in the index.
func (idx *Index[K, V]) Items(fn func(Item[K, V])) { idx.g.Items(fn) }

// Resize grows the index's internal capacity ahead of a bulk insert whose
// final size is known, avoiding repeated reallocation during AddAll.
func (idx *Index[K, V]) Resize(n int) { idx.g.Resize(n) }

// Metrics returns the index's Prometheus metrics, or nil if WithMetrics(false)
// was set.
func (idx *Index[K, V]) Metrics() *obs.Metrics { return idx.metrics }

// RefreshMetrics recomputes the average-degree and tombstone-ratio gauges
// by scanning the graph once. This is a single O(n) pass, so callers
// should run it periodically (e.g. after a batch, or on a timer) rather
// than after every single Add/Remove.
func (idx *Index[K, V]) RefreshMetrics() {
	if idx.metrics == nil {
		return
	}
	st := idx.g.Stats()
	idx.metrics.GraphDegree.Set(st.AverageDegree)
	idx.metrics.TombstoneRatio.Set(st.TombstoneRatio)
}

// FindNearest returns the k nearest live items to query, searching with
// the index's configured EfSearch.
func (idx *Index[K, V]) FindNearest(query V, k int) ([]SearchResult[K, V], error) {
	return idx.FindNearestWithEf(query, k, idx.cfg.EfSearch)
}

// FindNearestWithEf is FindNearest with an explicit ef, letting a caller
// trade recall for latency on a single query without reconfiguring the
// whole index.
func (idx *Index[K, V]) FindNearestWithEf(query V, k int, ef int) ([]SearchResult[K, V], error) {
	start := time.Now()
	results, err := idx.findNearest(query, k, ef)
	if idx.metrics != nil {
		idx.metrics.SearchQueries.Inc()
		idx.metrics.SearchLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			idx.metrics.SearchErrors.Inc()
		}
	}
	return results, err
}

func (idx *Index[K, V]) findNearest(query V, k int, ef int) ([]SearchResult[K, V], error) {
	if k <= 0 {
		return nil, fmt.Errorf("hnswgraph: k must be positive")
	}
	if ef < k {
		ef = k
	}
	return idx.g.FindNearest(query, k, ef)
}

// FindNeighbors returns the live neighbors of id at level 0, closest
// first — the graph's own adjacency list for id, not a fresh k-NN search.
func (idx *Index[K, V]) FindNeighbors(id K) ([]SearchResult[K, V], error) {
	return idx.g.FindNeighbors(id)
}

// Save writes the index to path. The write is atomic; see
// internal/graph.Save for the on-disk format and crash-safety guarantee.
func (idx *Index[K, V]) Save(path string) error {
	if err := idx.g.Save(path); err != nil {
		return fmt.Errorf("hnswgraph: save: %w", err)
	}
	return nil
}

// Load replaces idx's contents with what was persisted at path. idx must
// be freshly constructed (via New, with the same K/V and codecs) and
// empty; Load does not merge into an existing index. Returns
// ErrIndexCorrupted if the file's magic, version, or checksum don't
// match what Save wrote.
func (idx *Index[K, V]) Load(path string) error {
	if err := idx.g.Load(path); err != nil {
		if errors.Is(err, graph.ErrCorrupted) {
			return ErrIndexCorrupted
		}
		return fmt.Errorf("hnswgraph: load: %w", err)
	}
	idx.mu.Lock()
	idx.dimension = 0
	set := false
	idx.g.Items(func(it Item[K, V]) {
		if !set {
			idx.dimension = it.Dimensions
			set = true
		}
	})
	idx.mu.Unlock()
	if idx.metrics != nil {
		idx.metrics.GraphSize.Set(float64(idx.g.Size()))
	}
	return nil
}
