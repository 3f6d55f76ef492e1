package memory

import (
	"fmt"
	"math"
)

// kernel computes one metric's distance between two equal-length vectors.
// All three kernels below share the "smaller is nearer" convention: inner
// product is negated, cosine distance is 1 minus cosine similarity.
type kernel func(a, b []float32) float32

// kernels maps every recognized metric tag to its implementation — a plain
// literal rather than a registration API, since nothing outside this file
// ever adds a metric.
var kernels = map[VectorMetricType]kernel{
	VectorMetricL2:     squaredL2,
	VectorMetricIP:     negatedInnerProduct,
	VectorMetricCosine: cosineDistance,
}

// GetDistance returns the kernel for tag, or an error if tag names a
// metric this module doesn't implement.
func GetDistance(tag VectorMetricType) (kernel, error) {
	fn, ok := kernels[tag]
	if !ok {
		return nil, fmt.Errorf("unknown distance function: %s", tag)
	}
	return fn, nil
}

// ComputeDistance computes the distance between two equal-length finite
// vectors under the named metric. Caller must ensure the lengths match and
// tag is one of the recognized metrics; both are programming errors here,
// not recoverable conditions — the column type system is expected to have
// already enforced them.
func ComputeDistance(a, b []float32, tag VectorMetricType) float32 {
	fn, err := GetDistance(tag)
	if err != nil {
		panic(err)
	}
	return fn(a, b)
}

// squaredL2 computes Σ(a_i - b_i)². Deliberately not rooted: monotonic with
// true L2, and the search hot path only needs the ordering, never the
// magnitude.
func squaredL2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return float32(sum)
}

// negatedInnerProduct computes -Σ a_i·b_i, so that, as with the other two
// metrics, a smaller result means a closer pair.
func negatedInnerProduct(a, b []float32) float32 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(-dot)
}

// cosineDistance computes 1 - cos(a, b). Either vector being all-zero makes
// cosine similarity undefined; this returns the maximum distance (1.0) for
// that case rather than propagating a NaN.
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return float32(1.0 - dot/math.Sqrt(normA*normB))
}
