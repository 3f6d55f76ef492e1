package memory

import (
	"math/rand"
	"sync"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// HNSWIndex is a single-layer HNSW index: a dense id space shared between
// a vector store, an RID store, and one NSW proximity graph. Multi-layer
// HNSW trades construction time for recall at larger scale; this module
// stays with the single base layer. Insertion searches that layer with
// candidate width m and connects to up to m of the results; ef_search sets
// the query width. ef_construction is validated and stored but does not
// affect insertion.
type HNSWIndex struct {
	columnName string
	config     *VectorIndexConfig

	m              int
	efConstruction int
	efSearch       int

	mu      sync.RWMutex
	vectors map[int64][]float32
	rids    []domain.RID
	layer   *NSW
	nextID  int64
}

// NewHNSWIndex validates config and returns an empty index. Construction
// fails with a single *ConfigError if m, ef_construction, or ef_search are
// missing or non-positive.
func NewHNSWIndex(columnName string, config *VectorIndexConfig) (*HNSWIndex, error) {
	m, err := intParam(config.Params, "m")
	if err != nil {
		return nil, err
	}
	efConstruction, err := intParam(config.Params, "ef_construction")
	if err != nil {
		return nil, err
	}
	efSearch, err := intParam(config.Params, "ef_search")
	if err != nil {
		return nil, err
	}

	vectors := make(map[int64][]float32)
	return &HNSWIndex{
		columnName:     columnName,
		config:         config,
		m:              m,
		efConstruction: efConstruction,
		efSearch:       efSearch,
		vectors:        vectors,
		layer:          NewNSW(vectors, config.MetricType),
	}, nil
}

// BuildIndex loads initialData in shuffled order, inserting each vector
// into the layer one at a time. Shuffling avoids a pathological skew
// where sequential, already-sorted input would all insert against the
// same few entry neighbors.
func (h *HNSWIndex) BuildIndex(initialData []VectorEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order := rand.Perm(len(initialData))
	for _, idx := range order {
		entry := initialData[idx]
		h.addVertexLocked(entry.Vector, entry.RID)
	}
	return nil
}

// InsertVectorEntry adds a single vector to an already-built (or empty)
// index.
func (h *HNSWIndex) InsertVectorEntry(vector []float32, rid domain.RID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addVertexLocked(vector, rid)
	return nil
}

func (h *HNSWIndex) addVertexLocked(vector []float32, rid domain.RID) {
	id := h.nextID
	h.nextID++

	h.vectors[id] = vector
	h.rids = append(h.rids, rid)
	h.layer.Insert(vector, id, h.efConstruction, h.m)
}

// ScanVectorKey returns up to limit RIDs ordered by ascending distance to
// query, searching with the configured ef_search width (or limit, if
// larger — a search narrower than what the caller asked for would silently
// truncate results).
func (h *HNSWIndex) ScanVectorKey(query []float32, limit int) ([]domain.RID, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || len(h.layer.inVertices) == 0 {
		return nil, nil
	}

	width := h.efSearch
	if limit > width {
		width = limit
	}

	ids := h.layer.FindNearestNeighbors(query, width, h.layer.inVertices[0])
	if len(ids) > limit {
		ids = ids[:limit]
	}

	rids := make([]domain.RID, len(ids))
	for i, id := range ids {
		rids[i] = h.rids[id]
	}
	return rids, nil
}

// GetConfig returns the options the index was constructed with.
func (h *HNSWIndex) GetConfig() *VectorIndexConfig {
	return h.config
}
