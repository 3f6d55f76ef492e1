package memory

import (
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// VectorEntry pairs a vector with the RID of the row that holds it, the
// shape BuildIndex bulk-loads and ScanVectorKey returns.
type VectorEntry struct {
	Vector []float32
	RID    domain.RID
}

// VectorIndex is the façade every ANN structure (HNSWIndex, IVFFlatIndex)
// implements. It owns no column semantics of its own — the caller supplies
// raw vectors and gets RIDs back; extracting the indexed column from a row
// and matching metric/dimension to the catalog's declared config is the
// caller's job.
type VectorIndex interface {
	// BuildIndex bulk-loads the index from the table's current contents.
	// Called once, before any InsertVectorEntry/ScanVectorKey.
	BuildIndex(initialData []VectorEntry) error
	// InsertVectorEntry adds a single vector to an already-built index.
	InsertVectorEntry(vector []float32, rid domain.RID) error
	// ScanVectorKey returns up to limit RIDs ordered by ascending distance
	// to query. May return fewer than limit if the index holds fewer
	// vectors, or if limit <= 0.
	ScanVectorKey(query []float32, limit int) ([]domain.RID, error)
	// GetConfig returns the options the index was constructed with.
	GetConfig() *VectorIndexConfig
}
