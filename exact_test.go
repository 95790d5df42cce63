package hnswgraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsExactReturnsTrueNearest(t *testing.T) {
	idx := newTestIndex(t)
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("v-%d", i)
		require.NoError(t, idx.Add(id, []float32{float32(i)}, 1, nil, 0))
	}

	exact := idx.AsExact()
	results := exact.FindNearest([]float32{20}, 3)
	require.Len(t, results, 3)
	require.Equal(t, "v-20", results[0].Item.ID)
}

func TestAsExactReflectsLiveRemovals(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Add("a", []float32{0}, 1, nil, 0))
	require.NoError(t, idx.Add("b", []float32{0.1}, 1, nil, 0))

	exact := idx.AsExact()
	require.NoError(t, idx.Remove("a", 0))

	results := exact.FindNearest([]float32{0}, 5)
	require.Len(t, results, 1)
	require.Equal(t, "b", results[0].Item.ID)
}

func TestAsExactZeroKReturnsNil(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Add("a", []float32{0}, 1, nil, 0))
	require.Nil(t, idx.AsExact().FindNearest([]float32{0}, 0))
}
