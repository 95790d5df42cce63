package hnswgraph

import "fmt"

// Config holds the construction-time parameters of an Index. Grounded on
// libravdb/options.go's Option func(*Config) error idiom, re-pointed at
// this module's own parameter set (m, ef, efConstruction, remove-enabled,
// codecs) rather than the teacher's storage-path/tracing/collection-count
// knobs, which belong to the multi-collection database layer this module
// doesn't carry forward.
type Config[K comparable, V any] struct {
	M              int
	EfConstruction int
	EfSearch       int
	MaxLevel       int
	RemoveEnabled  bool
	MaxSize        int // 0 means unbounded

	Distance  DistanceFunc[V]
	IDCodec   IDCodec[K]
	ItemCodec ItemCodec[V]

	MetricsEnabled bool
}

// Option configures a Config. Options are applied in order and validated
// eagerly, matching the teacher's functional-options convention.
type Option[K comparable, V any] func(*Config[K, V]) error

func defaultConfig[K comparable, V any]() Config[K, V] {
	return Config[K, V]{
		M:              16,
		EfConstruction: 200,
		EfSearch:       64,
		RemoveEnabled:  true,
		MetricsEnabled: true,
	}
}

// WithM sets the maximum number of bidirectional links each node keeps at
// levels above 0 (level 0 keeps 2*M).
func WithM[K comparable, V any](m int) Option[K, V] {
	return func(c *Config[K, V]) error {
		if m <= 0 {
			return fmt.Errorf("hnswgraph: M must be positive")
		}
		c.M = m
		return nil
	}
}

// WithEfConstruction sets the size of the dynamic candidate list used
// while building the graph.
func WithEfConstruction[K comparable, V any](ef int) Option[K, V] {
	return func(c *Config[K, V]) error {
		if ef <= 0 {
			return fmt.Errorf("hnswgraph: EfConstruction must be positive")
		}
		c.EfConstruction = ef
		return nil
	}
}

// WithEfSearch sets the default size of the dynamic candidate list used
// while querying.
func WithEfSearch[K comparable, V any](ef int) Option[K, V] {
	return func(c *Config[K, V]) error {
		if ef <= 0 {
			return fmt.Errorf("hnswgraph: EfSearch must be positive")
		}
		c.EfSearch = ef
		return nil
	}
}

// WithMaxSize caps the number of node slots (live plus tombstoned) the
// index will hold; Add returns ErrSizeLimitExceeded once the cap is
// reached. Zero (the
// default) means unbounded.
func WithMaxSize[K comparable, V any](n int) Option[K, V] {
	return func(c *Config[K, V]) error {
		if n < 0 {
			return fmt.Errorf("hnswgraph: MaxSize must not be negative")
		}
		c.MaxSize = n
		return nil
	}
}

// WithRemoveEnabled controls whether Remove is permitted on this index.
func WithRemoveEnabled[K comparable, V any](enabled bool) Option[K, V] {
	return func(c *Config[K, V]) error {
		c.RemoveEnabled = enabled
		return nil
	}
}

// WithDistance sets the distance capability the index compares vectors
// with. Required unless the zero-value default for V happens to be usable
// (it never is) — New returns an error if this is never set.
func WithDistance[K comparable, V any](fn DistanceFunc[V]) Option[K, V] {
	return func(c *Config[K, V]) error {
		if fn == nil {
			return fmt.Errorf("hnswgraph: Distance function must not be nil")
		}
		c.Distance = fn
		return nil
	}
}

// WithIDCodec sets the codec used to canonicalize IDs for persistence and
// for the deterministic level-assignment hash.
func WithIDCodec[K comparable, V any](codec IDCodec[K]) Option[K, V] {
	return func(c *Config[K, V]) error {
		if codec == nil {
			return fmt.Errorf("hnswgraph: IDCodec must not be nil")
		}
		c.IDCodec = codec
		return nil
	}
}

// WithItemCodec sets the codec used to serialize vectors for persistence.
func WithItemCodec[K comparable, V any](codec ItemCodec[V]) Option[K, V] {
	return func(c *Config[K, V]) error {
		if codec == nil {
			return fmt.Errorf("hnswgraph: ItemCodec must not be nil")
		}
		c.ItemCodec = codec
		return nil
	}
}

// WithMetrics enables or disables Prometheus metrics collection.
func WithMetrics[K comparable, V any](enabled bool) Option[K, V] {
	return func(c *Config[K, V]) error {
		c.MetricsEnabled = enabled
		return nil
	}
}
