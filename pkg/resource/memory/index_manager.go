package memory

import (
	"fmt"
	"sync"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"go.uber.org/zap"
)

// IndexManager owns every vector index in the catalog, keyed by
// (tableName, columnName). The index type (HNSW vs IVFFlat) is fixed per
// index at creation time from the catalog's DDL and never changes.
type IndexManager struct {
	mu      sync.RWMutex
	indexes map[string]VectorIndex
	log     *zap.Logger
}

// NewIndexManager returns an empty manager. A nil logger falls back to a
// no-op logger.
func NewIndexManager(log *zap.Logger) *IndexManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &IndexManager{indexes: make(map[string]VectorIndex), log: log}
}

func indexKey(tableName, columnName string) string {
	return tableName + "." + columnName
}

// CreateVectorIndex constructs a new index of the given type for
// tableName.columnName. Returns a *ConfigError if config is missing a
// required option for that index type.
func (m *IndexManager) CreateVectorIndex(tableName, columnName string, indexType IndexType, config *VectorIndexConfig) (VectorIndex, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := indexKey(tableName, columnName)
	if _, exists := m.indexes[key]; exists {
		return nil, fmt.Errorf("vector index already exists on %s", key)
	}

	var (
		idx VectorIndex
		err error
	)
	switch indexType {
	case IndexTypeVectorHNSW:
		idx, err = NewHNSWIndex(columnName, config)
	case IndexTypeVectorIVFFlat:
		idx, err = NewIVFFlatIndex(columnName, config)
	default:
		return nil, fmt.Errorf("unknown vector index type: %s", indexType)
	}
	if err != nil {
		return nil, err
	}

	m.indexes[key] = idx
	m.log.Info("vector index created",
		zap.String("table", tableName),
		zap.String("column", columnName),
		zap.String("type", string(indexType)),
	)
	return idx, nil
}

// GetVectorIndex returns the index built over tableName.columnName, if any.
func (m *IndexManager) GetVectorIndex(tableName, columnName string) (VectorIndex, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.indexes[indexKey(tableName, columnName)]
	return idx, ok
}

// TableIndexes returns handles for every vector index built over tableName,
// in the shape the catalog exposes them to the executor's insert fan-out.
func (m *IndexManager) TableIndexes(tableName string) []*domain.IndexInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var infos []*domain.IndexInfo
	for key, idx := range m.indexes {
		prefix := tableName + "."
		if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		columnName := key[len(prefix):]
		infos = append(infos, &domain.IndexInfo{
			Name:       key,
			TableName:  tableName,
			ColumnName: columnName,
			Index:      &vectorIndexHandle{idx},
		})
	}
	return infos
}

// vectorIndexHandle adapts a VectorIndex to domain.VectorIndexHandle so the
// catalog layer never needs to import this package's concrete index types.
type vectorIndexHandle struct {
	idx VectorIndex
}

func (h *vectorIndexHandle) InsertVectorEntry(vector []float32, rid domain.RID) error {
	return h.idx.InsertVectorEntry(vector, rid)
}
