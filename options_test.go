package hnswgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/hnswgraph/internal/distance"
)

func TestNewRequiresDistanceIDCodecItemCodec(t *testing.T) {
	_, err := New[string, []float32]()
	require.Error(t, err)

	_, err = New[string, []float32](WithDistance[string, []float32](distance.Euclidean))
	require.Error(t, err)

	_, err = New[string, []float32](
		WithDistance[string, []float32](distance.Euclidean),
		WithIDCodec[string, []float32](StringIDCodec{}),
		WithItemCodec[string, []float32](DenseVectorCodec{}),
		WithMetrics[string, []float32](false),
	)
	require.NoError(t, err)
}

func TestOptionValidationRejectsBadValues(t *testing.T) {
	_, err := New[string, []float32](WithM[string, []float32](0))
	require.Error(t, err)

	_, err = New[string, []float32](WithEfConstruction[string, []float32](-1))
	require.Error(t, err)

	_, err = New[string, []float32](WithMaxSize[string, []float32](-1))
	require.Error(t, err)

	_, err = New[string, []float32](WithDistance[string, []float32](nil))
	require.Error(t, err)
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := defaultConfig[string, []float32]()
	require.Equal(t, 16, cfg.M)
	require.Equal(t, 200, cfg.EfConstruction)
	require.Equal(t, 64, cfg.EfSearch)
	require.True(t, cfg.RemoveEnabled)
	require.True(t, cfg.MetricsEnabled)
}
