package hnswgraph

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xDarkicex/hnswgraph/internal/distance"
	"github.com/xDarkicex/hnswgraph/internal/graph"
)

// Item, SearchResult, DistanceFunc, IDCodec, and ItemCodec are re-exported
// straight from internal/graph so callers never need to import the
// internal package themselves — the generic engine lives there, the
// public, stable surface lives here.
type (
	Item[K comparable, V any]       = graph.Item[K, V]
	SearchResult[K comparable, V any] = graph.SearchResult[K, V]
	DistanceFunc[V any]             = graph.DistanceFunc[V]
	IDCodec[K comparable]           = graph.IDCodec[K]
	ItemCodec[V any]                = graph.ItemCodec[V]
)

// Sparse is the sparse-vector value type for indexes built with a sparse
// distance function such as SparseCosine.
type Sparse = distance.Sparse

// StringIDCodec is the default IDCodec for string-keyed indexes: the ID's
// UTF-8 bytes, unchanged.
type StringIDCodec struct{}

func (StringIDCodec) Encode(id string) ([]byte, error) { return []byte(id), nil }
func (StringIDCodec) Decode(b []byte) (string, error)  { return string(b), nil }

// DenseVectorCodec is the default ItemCodec for []float32 vectors:
// little-endian IEEE-754 floats, back to back.
type DenseVectorCodec struct{}

func (DenseVectorCodec) Encode(v []float32) ([]byte, error) {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf, nil
}

func (DenseVectorCodec) Decode(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("hnswgraph: vector byte length %d not a multiple of 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

// SparseVectorCodec is the default ItemCodec for Sparse vectors: index
// count, then one (index, value) pair per entry, all little-endian.
type SparseVectorCodec struct{}

func (SparseVectorCodec) Encode(v Sparse) ([]byte, error) {
	n := len(v.Indices)
	buf := make([]byte, 4+8*n)
	binary.LittleEndian.PutUint32(buf, uint32(n))
	off := 4
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[off:], uint32(v.Indices[i]))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(v.Values[i]))
		off += 8
	}
	return buf, nil
}

func (SparseVectorCodec) Decode(b []byte) (Sparse, error) {
	if len(b) < 4 {
		return Sparse{}, fmt.Errorf("hnswgraph: sparse vector payload too short")
	}
	n := int(binary.LittleEndian.Uint32(b))
	if len(b) != 4+8*n {
		return Sparse{}, fmt.Errorf("hnswgraph: sparse vector payload length mismatch")
	}
	v := Sparse{Indices: make([]int32, n), Values: make([]float32, n)}
	off := 4
	for i := 0; i < n; i++ {
		v.Indices[i] = int32(binary.LittleEndian.Uint32(b[off:]))
		v.Values[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:]))
		off += 8
	}
	return v, nil
}
