// Package distance provides the dense and sparse vector distance
// functions this module exposes as pluggable DistanceFunc capabilities.
// Grounded on the teacher's internal/util/distance.go (Euclidean, cosine,
// inner product), ported from float64 round-tripping to chewxy/math32's
// float32-native sqrt and extended with the rest of spec.md §1's named
// distance family.
package distance

import "github.com/chewxy/math32"

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float32) float64 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return float64(math32.Sqrt(sum))
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b []float32) float64 {
	var sum float32
	for i := range a {
		sum += math32.Abs(a[i] - b[i])
	}
	return float64(sum)
}

// Cosine returns 1 minus the cosine similarity of a and b, in [0, 2]. A
// zero vector is defined to be at distance 1.0 (the orthogonal distance)
// from everything, including itself.
func Cosine(a, b []float32) float64 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return float64(1.0 - dot/(math32.Sqrt(normA)*math32.Sqrt(normB)))
}

// InnerProduct returns the negated dot product of a and b, so that
// "larger inner product" sorts as "smaller distance" like every other
// function in this package.
func InnerProduct(a, b []float32) float64 {
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	return float64(-dot)
}

// Canberra returns the Canberra distance between a and b, a weighted
// version of Manhattan distance that is sensitive to small differences
// near zero — useful for sparse, non-negative feature vectors.
func Canberra(a, b []float32) float64 {
	var sum float32
	for i := range a {
		num := math32.Abs(a[i] - b[i])
		den := math32.Abs(a[i]) + math32.Abs(b[i])
		if den == 0 {
			continue
		}
		sum += num / den
	}
	return float64(sum)
}

// BrayCurtis returns the Bray-Curtis dissimilarity between a and b.
func BrayCurtis(a, b []float32) float64 {
	var num, den float32
	for i := range a {
		num += math32.Abs(a[i] - b[i])
		den += math32.Abs(a[i] + b[i])
	}
	if den == 0 {
		return 0
	}
	return float64(num / den)
}

// Correlation returns 1 minus the Pearson correlation coefficient of a
// and b, treating perfectly correlated vectors as zero distance apart.
func Correlation(a, b []float32) float64 {
	n := float32(len(a))
	if n == 0 {
		return 1.0
	}

	var meanA, meanB float32
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n

	var cov, varA, varB float32
	for i := range a {
		da, db := a[i]-meanA, b[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 1.0
	}
	return float64(1.0 - cov/(math32.Sqrt(varA)*math32.Sqrt(varB)))
}
