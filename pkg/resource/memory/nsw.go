package memory

import "container/heap"

// NSW is a single navigable-small-world proximity graph: a dense id space
// plus an undirected adjacency list, searched by greedy best-first
// expansion. It is the building block HNSWIndex stacks one of (layer 0).
//
// vectors is a read-only reference to the vector store owned by the parent
// HNSWIndex — NSW never allocates vector storage itself, only ids into it.
type NSW struct {
	vectors    map[int64][]float32
	metric     VectorMetricType
	inVertices []int64
	edges      map[int64][]int64
}

// NewNSW creates an empty layer sharing the given vector store.
func NewNSW(vectors map[int64][]float32, metric VectorMetricType) *NSW {
	return &NSW{
		vectors: vectors,
		metric:  metric,
		edges:   make(map[int64][]int64),
	}
}

type nswCandidate struct {
	id   int64
	dist float32
}

// exploreHeap is a min-heap ordered by distance: pop returns the closest
// unexplored candidate.
type exploreHeap []nswCandidate

func (h exploreHeap) Len() int            { return len(h) }
func (h exploreHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h exploreHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *exploreHeap) Push(x interface{}) { *h = append(*h, x.(nswCandidate)) }
func (h *exploreHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// resultHeap is a max-heap ordered by distance: its root is the current
// worst-ranked member, popped to make room for a better candidate.
type resultHeap []nswCandidate

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(nswCandidate)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindNearestNeighbors runs greedy best-first search from entry, returning
// up to limit vertex ids sorted by ascending distance to q. Requires
// limit > 0 and a non-empty layer (entry must already be a member).
func (n *NSW) FindNearestNeighbors(q []float32, limit int, entry int64) []int64 {
	visited := map[int64]bool{entry: true}

	entryDist := ComputeDistance(n.vectors[entry], q, n.metric)

	explore := &exploreHeap{{id: entry, dist: entryDist}}
	heap.Init(explore)

	result := &resultHeap{{id: entry, dist: entryDist}}
	heap.Init(result)

	for explore.Len() > 0 {
		cur := heap.Pop(explore).(nswCandidate)

		if cur.dist > (*result)[0].dist {
			break
		}

		for _, neighbor := range n.edges[cur.id] {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true

			d := ComputeDistance(n.vectors[neighbor], q, n.metric)
			heap.Push(explore, nswCandidate{id: neighbor, dist: d})
			heap.Push(result, nswCandidate{id: neighbor, dist: d})
			for result.Len() > limit {
				heap.Pop(result)
			}
		}
	}

	ordered := make([]nswCandidate, result.Len())
	for i := len(ordered) - 1; i >= 0; i-- {
		ordered[i] = heap.Pop(result).(nswCandidate)
	}

	ids := make([]int64, len(ordered))
	for i, c := range ordered {
		ids[i] = c.id
	}
	return ids
}

// Insert connects id to its m nearest existing neighbors (searched with
// width m, per the source's candidate-width convention — see
// HNSWIndex doc) and then adds it to the layer. A first insertion into an
// empty layer just adds the vertex with no edges.
func (n *NSW) Insert(v []float32, id int64, efConstruction, m int) {
	if len(n.inVertices) > 0 {
		neighbors := n.FindNearestNeighbors(v, m, n.inVertices[0])
		limit := m
		if limit > len(neighbors) {
			limit = len(neighbors)
		}
		for i := 0; i < limit; i++ {
			n.Connect(id, neighbors[i])
		}
	}
	n.AddVertex(id)
}

// Connect adds an undirected edge between a and b. Self-loops are rejected;
// duplicate edges are tolerated (search treats them as a visited no-op).
func (n *NSW) Connect(a, b int64) {
	if a == b {
		return
	}
	n.edges[a] = append(n.edges[a], b)
	n.edges[b] = append(n.edges[b], a)
}

// AddVertex appends id to the layer's vertex list. A vertex appears at
// most once per layer.
func (n *NSW) AddVertex(id int64) {
	n.inVertices = append(n.inVertices, id)
}
