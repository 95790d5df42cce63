package distance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSparseEuclideanIdenticalIsZero(t *testing.T) {
	a := Sparse{Indices: []int32{0, 5, 9}, Values: []float32{1, 2, 3}}
	require.InDelta(t, 0.0, SparseEuclidean(a, a), 1e-6)
}

func TestSparseEuclideanMatchesDenseExpansion(t *testing.T) {
	a := Sparse{Indices: []int32{0, 2}, Values: []float32{3, 4}}
	b := Sparse{Indices: []int32{2}, Values: []float32{1}}
	// dense equivalents over a shared index space {0,1,2}: a=[3,0,4], b=[0,0,1]
	got := SparseEuclidean(a, b)
	want := Euclidean([]float32{3, 0, 4}, []float32{0, 0, 1})
	require.InDelta(t, want, got, 1e-5)
}

func TestSparseCosineDisjointIndicesIsOne(t *testing.T) {
	a := Sparse{Indices: []int32{0}, Values: []float32{1}}
	b := Sparse{Indices: []int32{1}, Values: []float32{1}}
	require.InDelta(t, 1.0, SparseCosine(a, b), 1e-6)
}

func TestSparseCosineZeroVectorIsOne(t *testing.T) {
	zero := Sparse{}
	other := Sparse{Indices: []int32{0}, Values: []float32{1}}
	require.Equal(t, 1.0, SparseCosine(zero, other))
}

func TestSparseInnerProductNegatesDot(t *testing.T) {
	a := Sparse{Indices: []int32{0, 1}, Values: []float32{2, 3}}
	b := Sparse{Indices: []int32{0, 1}, Values: []float32{4, 5}}
	require.InDelta(t, -23.0, SparseInnerProduct(a, b), 1e-6)
}
