package memory

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// IVFFlatIndex partitions vectors into `lists` centroid buckets and probes
// `probe_lists` of them nearest the query at scan time. Centroids are
// chosen once, refined by a single assignment-then-recompute pass, and
// never touched again — later inserts only ever pick the nearest existing
// bucket, so the partition can drift as data accumulates after Build.
type IVFFlatIndex struct {
	columnName string
	config     *VectorIndexConfig

	lists      int
	probeLists int
	metric     VectorMetricType

	mu        sync.RWMutex
	centroids [][]float32
	buckets   [][]VectorEntry
}

// NewIVFFlatIndex validates config and returns an empty index. Construction
// fails with a single *ConfigError if lists or probe_lists are missing or
// non-positive.
func NewIVFFlatIndex(columnName string, config *VectorIndexConfig) (*IVFFlatIndex, error) {
	lists, err := intParam(config.Params, "lists")
	if err != nil {
		return nil, err
	}
	probeLists, err := intParam(config.Params, "probe_lists")
	if err != nil {
		return nil, err
	}

	return &IVFFlatIndex{
		columnName: columnName,
		config:     config,
		lists:      lists,
		probeLists: probeLists,
		metric:     config.MetricType,
	}, nil
}

// BuildIndex seeds `lists` centroids from distinct random members of
// initialData, then runs one refinement pass: assign every vector to its
// nearest centroid, then replace each centroid with its bucket's mean. A
// second pass that re-assigns against the refined centroids is not run:
// the stored buckets are the assignment against the seed centroids, not a
// re-assignment against the final (mean) centroids.
func (idx *IVFFlatIndex) BuildIndex(initialData []VectorEntry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(initialData) == 0 {
		return nil
	}

	numLists := idx.lists
	if numLists > len(initialData) {
		numLists = len(initialData)
	}

	perm := rand.Perm(len(initialData))
	centroids := make([][]float32, numLists)
	for i := 0; i < numLists; i++ {
		centroids[i] = initialData[perm[i]].Vector
	}

	buckets := make([][]VectorEntry, numLists)
	for _, entry := range initialData {
		c := idx.nearestCentroid(entry.Vector, centroids)
		buckets[c] = append(buckets[c], entry)
	}

	refined := make([][]float32, numLists)
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			// Two sampled seeds can be equal (or tie against every point in
			// favor of a lower index), leaving this centroid's bucket empty.
			// Keep the seed centroid rather than average a zero-length
			// bucket — an empty bucket just never moves this round.
			refined[i] = centroids[i]
			continue
		}
		refined[i] = mean(bucket)
	}

	idx.centroids = refined
	idx.buckets = buckets
	return nil
}

// InsertVectorEntry appends vector to the bucket of its nearest centroid.
// Centroids are never recomputed after Build. If the index has no
// centroids (BuildIndex saw no data), the vector is not stored.
func (idx *IVFFlatIndex) InsertVectorEntry(vector []float32, rid domain.RID) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(idx.centroids) == 0 {
		return nil
	}
	c := idx.nearestCentroid(vector, idx.centroids)
	idx.buckets[c] = append(idx.buckets[c], VectorEntry{Vector: vector, RID: rid})
	return nil
}

// ScanVectorKey probes the probe_lists centroids nearest query, collects
// every vector in those buckets, and returns up to limit RIDs ordered by
// ascending distance to query.
func (idx *IVFFlatIndex) ScanVectorKey(query []float32, limit int) ([]domain.RID, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if limit <= 0 || len(idx.centroids) == 0 {
		return nil, nil
	}

	order := make([]int, len(idx.centroids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return ComputeDistance(idx.centroids[order[i]], query, idx.metric) <
			ComputeDistance(idx.centroids[order[j]], query, idx.metric)
	})

	probe := idx.probeLists
	if probe > len(order) {
		probe = len(order)
	}

	var candidates []VectorEntry
	for i := 0; i < probe; i++ {
		candidates = append(candidates, idx.buckets[order[i]]...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return ComputeDistance(candidates[i].Vector, query, idx.metric) <
			ComputeDistance(candidates[j].Vector, query, idx.metric)
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	rids := make([]domain.RID, limit)
	for i := 0; i < limit; i++ {
		rids[i] = candidates[i].RID
	}
	return rids, nil
}

// GetConfig returns the options the index was constructed with.
func (idx *IVFFlatIndex) GetConfig() *VectorIndexConfig {
	return idx.config
}

func (idx *IVFFlatIndex) nearestCentroid(v []float32, centroids [][]float32) int {
	best := 0
	bestDist := ComputeDistance(v, centroids[0], idx.metric)
	for i := 1; i < len(centroids); i++ {
		d := ComputeDistance(v, centroids[i], idx.metric)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// mean returns the element-wise average of a non-empty bucket of vectors.
func mean(bucket []VectorEntry) []float32 {
	sum := make([]float32, len(bucket[0].Vector))
	for _, entry := range bucket {
		for i, x := range entry.Vector {
			sum[i] += x
		}
	}
	for i := range sum {
		sum[i] /= float32(len(bucket))
	}
	return sum
}
