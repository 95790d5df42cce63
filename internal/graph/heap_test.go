package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinHeapOrdersClosestFirst(t *testing.T) {
	h := newMinHeap(4)
	h.push(candidate{id: 1, distance: 5})
	h.push(candidate{id: 2, distance: 1})
	h.push(candidate{id: 3, distance: 3})

	require.Equal(t, int32(2), h.peek().id)
	require.Equal(t, int32(2), h.pop().id)
	require.Equal(t, int32(3), h.pop().id)
	require.Equal(t, int32(1), h.pop().id)
	require.True(t, h.empty())
}

func TestMaxHeapOrdersFurthestOnTop(t *testing.T) {
	h := newMaxHeap(4)
	h.push(candidate{id: 1, distance: 5})
	h.push(candidate{id: 2, distance: 1})
	h.push(candidate{id: 3, distance: 3})

	require.Equal(t, int32(1), h.top().id)
	require.Equal(t, int32(1), h.pop().id)
	require.Equal(t, int32(3), h.pop().id)
	require.Equal(t, int32(2), h.pop().id)
	require.True(t, h.empty())
}

func TestMaxHeapBoundedToEf(t *testing.T) {
	h := newMaxHeap(3)
	for _, d := range []float64{5, 1, 3, 9, 0.5} {
		h.push(candidate{distance: d})
		if h.Len() > 3 {
			h.pop()
		}
	}
	require.Equal(t, 3, h.Len())
	require.Equal(t, 3.0, h.top().distance)
}
