package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAppendAndAt(t *testing.T) {
	s := newStore[string, []float32](2)
	n1 := newNode[string, []float32]("a", 0, &Item[string, []float32]{ID: "a"})
	n2 := newNode[string, []float32]("b", 0, &Item[string, []float32]{ID: "b"})

	idx1 := s.append(n1)
	idx2 := s.append(n2)
	require.Equal(t, int32(0), idx1)
	require.Equal(t, int32(1), idx2)
	require.Equal(t, 2, s.len())
	require.Same(t, n1, s.at(idx1))
	require.Same(t, n2, s.at(idx2))
}

func TestStoreGrowsPastInitialCapacity(t *testing.T) {
	s := newStore[string, []float32](1)
	for i := 0; i < 10; i++ {
		s.append(newNode[string, []float32]("x", 0, nil))
	}
	require.Equal(t, 10, s.len())
	require.GreaterOrEqual(t, s.cap(), 10)
}

func TestStoreAtOutOfRangeReturnsNil(t *testing.T) {
	s := newStore[string, []float32](4)
	require.Nil(t, s.at(-1))
	require.Nil(t, s.at(100))
}

func TestStoreResizePreservesExistingSlots(t *testing.T) {
	s := newStore[string, []float32](2)
	idx := s.append(newNode[string, []float32]("a", 0, nil))
	s.resize(64)
	require.GreaterOrEqual(t, s.cap(), 64)
	require.NotNil(t, s.at(idx))
}

func TestStoreEachVisitsOnlyUsedSlots(t *testing.T) {
	s := newStore[string, []float32](4)
	s.append(newNode[string, []float32]("a", 0, nil))
	s.append(newNode[string, []float32]("b", 0, nil))
	visited := 0
	s.each(func(idx int32, n *Node[string, []float32]) { visited++ })
	require.Equal(t, 2, visited)
}
