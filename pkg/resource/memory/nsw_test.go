package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildNSW(t *testing.T, vecs map[int64][]float32, m int) *NSW {
	t.Helper()
	n := NewNSW(vecs, VectorMetricL2)
	for id := int64(0); id < int64(len(vecs)); id++ {
		n.Insert(vecs[id], id, 10, m)
	}
	return n
}

func TestNSWExactMatch(t *testing.T) {
	vecs := map[int64][]float32{
		0: {0, 0},
		1: {10, 10},
		2: {20, 20},
		3: {1, 1},
	}
	n := buildNSW(t, vecs, 2)

	ids := n.FindNearestNeighbors([]float32{0, 0}, 1, 0)
	assert.Equal(t, []int64{0}, ids)
}

func TestNSWTopKOrdering(t *testing.T) {
	vecs := map[int64][]float32{
		0: {0, 0},
		1: {1, 0},
		2: {2, 0},
		3: {3, 0},
		4: {100, 100},
	}
	n := buildNSW(t, vecs, 3)

	ids := n.FindNearestNeighbors([]float32{0, 0}, 3, 0)
	assert.Len(t, ids, 3)
	assert.Equal(t, int64(0), ids[0])

	for i := 1; i < len(ids); i++ {
		prev := ComputeDistance(vecs[ids[i-1]], []float32{0, 0}, VectorMetricL2)
		cur := ComputeDistance(vecs[ids[i]], []float32{0, 0}, VectorMetricL2)
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestNSWSelfLoopRejected(t *testing.T) {
	vecs := map[int64][]float32{0: {0, 0}}
	n := NewNSW(vecs, VectorMetricL2)
	n.AddVertex(0)
	n.Connect(0, 0)
	assert.Empty(t, n.edges[0])
}

func TestNSWSingleVertex(t *testing.T) {
	vecs := map[int64][]float32{0: {5, 5}}
	n := buildNSW(t, vecs, 4)
	ids := n.FindNearestNeighbors([]float32{0, 0}, 5, 0)
	assert.Equal(t, []int64{0}, ids)
}
