package memory

import (
	"testing"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hnswConfig(m, efConstruction, efSearch int) *VectorIndexConfig {
	return &VectorIndexConfig{
		MetricType: VectorMetricL2,
		Dimension:  2,
		Params: map[string]interface{}{
			"m":               m,
			"ef_construction": efConstruction,
			"ef_search":       efSearch,
		},
	}
}

func TestNewHNSWIndexMissingOption(t *testing.T) {
	cfg := &VectorIndexConfig{MetricType: VectorMetricL2, Dimension: 2, Params: map[string]interface{}{"m": 4}}
	_, err := NewHNSWIndex("embedding", cfg)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewHNSWIndexNonPositiveOption(t *testing.T) {
	cfg := hnswConfig(0, 100, 20)
	_, err := NewHNSWIndex("embedding", cfg)
	require.Error(t, err)
}

func TestHNSWBuildAndScanExactMatch(t *testing.T) {
	idx, err := NewHNSWIndex("embedding", hnswConfig(4, 50, 20))
	require.NoError(t, err)

	data := []VectorEntry{
		{Vector: []float32{0, 0}, RID: domain.RID{PageID: 1, Slot: 0}},
		{Vector: []float32{10, 10}, RID: domain.RID{PageID: 1, Slot: 1}},
		{Vector: []float32{20, 20}, RID: domain.RID{PageID: 1, Slot: 2}},
	}
	require.NoError(t, idx.BuildIndex(data))

	rids, err := idx.ScanVectorKey([]float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, rids, 1)
	assert.Equal(t, domain.RID{PageID: 1, Slot: 0}, rids[0])
}

func TestHNSWInsertVectorEntryAfterBuild(t *testing.T) {
	idx, err := NewHNSWIndex("embedding", hnswConfig(4, 50, 20))
	require.NoError(t, err)

	require.NoError(t, idx.BuildIndex([]VectorEntry{
		{Vector: []float32{0, 0}, RID: domain.RID{PageID: 1, Slot: 0}},
	}))
	require.NoError(t, idx.InsertVectorEntry([]float32{5, 5}, domain.RID{PageID: 1, Slot: 1}))

	rids, err := idx.ScanVectorKey([]float32{5, 5}, 1)
	require.NoError(t, err)
	require.Len(t, rids, 1)
	assert.Equal(t, domain.RID{PageID: 1, Slot: 1}, rids[0])
}

func TestHNSWScanEmptyIndex(t *testing.T) {
	idx, err := NewHNSWIndex("embedding", hnswConfig(4, 50, 20))
	require.NoError(t, err)

	rids, err := idx.ScanVectorKey([]float32{0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, rids)
}
