package distance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEuclideanIdenticalVectorsIsZero(t *testing.T) {
	require.Equal(t, 0.0, Euclidean([]float32{1, 2, 3}, []float32{1, 2, 3}))
}

func TestEuclideanKnownValue(t *testing.T) {
	require.InDelta(t, 5.0, Euclidean([]float32{0, 0}, []float32{3, 4}), 1e-6)
}

func TestManhattanKnownValue(t *testing.T) {
	require.InDelta(t, 7.0, Manhattan([]float32{0, 0}, []float32{3, 4}), 1e-6)
}

func TestCosineIdenticalVectorsIsZero(t *testing.T) {
	require.InDelta(t, 0.0, Cosine([]float32{1, 1}, []float32{2, 2}), 1e-6)
}

func TestCosineOrthogonalVectorsIsOne(t *testing.T) {
	require.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
}

func TestCosineZeroVectorIsDistanceOne(t *testing.T) {
	require.Equal(t, 1.0, Cosine([]float32{0, 0}, []float32{1, 1}))
	require.Equal(t, 1.0, Cosine([]float32{0, 0}, []float32{0, 0}))
}

func TestInnerProductNegatesDotProduct(t *testing.T) {
	require.InDelta(t, -11.0, InnerProduct([]float32{1, 2}, []float32{3, 4}), 1e-6)
}

func TestInnerProductOrdersLargerDotAsCloser(t *testing.T) {
	q := []float32{1, 1}
	near := InnerProduct(q, []float32{10, 10})
	far := InnerProduct(q, []float32{1, 1})
	require.Less(t, near, far)
}

func TestCanberraZeroDenominatorSkipped(t *testing.T) {
	require.Equal(t, 0.0, Canberra([]float32{0, 0}, []float32{0, 0}))
}

func TestBrayCurtisIdenticalVectorsIsZero(t *testing.T) {
	require.InDelta(t, 0.0, BrayCurtis([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
}

func TestCorrelationPerfectlyCorrelatedIsZero(t *testing.T) {
	require.InDelta(t, 0.0, Correlation([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-5)
}

func TestCorrelationAnticorrelatedIsTwo(t *testing.T) {
	require.InDelta(t, 2.0, Correlation([]float32{1, 2, 3}, []float32{3, 2, 1}), 1e-5)
}
