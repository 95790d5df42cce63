package graph

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertRejectsDuplicateLiveID(t *testing.T) {
	cfg := testConfig()
	cfg.RemoveEnabled = false
	g, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2}))
	err = g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{1, 1}, Dimensions: 2})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestInsertSameVectorIsInPlaceUpsert(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2, Version: 1}))
	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2, Version: 2, Metadata: map[string]any{"k": "v"}}))

	require.Equal(t, 1, g.Size())
	item, ok := g.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(2), item.Version)
	require.Equal(t, "v", item.Metadata["k"])
}

func TestInsertDifferentVectorSupersedesStoredNode(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2, Version: 1}))
	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{5, 5}, Dimensions: 2, Version: 2}))

	require.Equal(t, 1, g.Size())
	item, ok := g.Get("a")
	require.True(t, ok)
	require.Equal(t, []float32{5, 5}, item.Vector)
}

func TestInsertRejectsStaleVersionAgainstLiveNode(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2, Version: 5}))
	err = g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{9, 9}, Dimensions: 2, Version: 1})
	require.ErrorIs(t, err, ErrStaleVersion)

	item, ok := g.Get("a")
	require.True(t, ok)
	require.Equal(t, []float32{0, 0}, item.Vector, "a stale-version insert must leave the stored node untouched")
}

func TestInsertRejectsStaleVersionAgainstTombstone(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2, Version: 5}))
	require.NoError(t, g.Remove("a", 5))

	err = g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{9, 9}, Dimensions: 2, Version: 1})
	require.ErrorIs(t, err, ErrStaleVersion)
	require.False(t, g.Contains("a"))
}

func TestInsertAllowsReinsertAfterRemove(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{0, 0}, Dimensions: 2}))
	require.NoError(t, g.Remove("a", 0))
	require.NoError(t, g.Insert(Item[string, []float32]{ID: "a", Vector: []float32{9, 9}, Dimensions: 2}))

	item, ok := g.Get("a")
	require.True(t, ok)
	require.Equal(t, []float32{9, 9}, item.Vector)
}

func TestInsertBuildsMultiLevelGraph(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("id-%d", i)
		vec := []float32{float32(i), float32(i * 2)}
		require.NoError(t, g.Insert(Item[string, []float32]{ID: id, Vector: vec, Dimensions: 2}))
	}
	require.Equal(t, 200, g.Size())

	maxLevel := 0
	g.store.each(func(_ int32, n *Node[string, []float32]) {
		if n.Level() > maxLevel {
			maxLevel = n.Level()
		}
	})
	require.Greater(t, maxLevel, 0, "expected at least one node above level 0 across 200 inserts")
}

func TestInsertConcurrentDistinctIDs(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c-%d", i)
			_ = g.Insert(Item[string, []float32]{ID: id, Vector: []float32{float32(i)}, Dimensions: 1})
		}(i)
	}
	wg.Wait()

	require.Equal(t, 64, g.Size())
}

func TestInsertConcurrentSameIDConvergesToOneLiveNode(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	// Every writer uses the same version, so none is rejected as stale; the
	// per-item lock means each insert either upserts in place or supersedes
	// whichever one went before it, but exactly one node ends up live.
	var wg sync.WaitGroup
	results := make([]error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Insert(Item[string, []float32]{ID: "same", Vector: []float32{float32(i)}, Dimensions: 1})
		}(i)
	}
	wg.Wait()

	for _, err := range results {
		require.NoError(t, err)
	}
	require.Equal(t, 1, g.Size())
}
