package operators

import (
	"testing"

	"github.com/kasuganosora/vectordb/pkg/expression"
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/kasuganosora/vectordb/pkg/resource/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, rows ...domain.Row) *domain.TableInfo {
	t.Helper()
	heap := memory.NewTableHeap(1)
	for _, row := range rows {
		_, err := heap.InsertTuple(row)
		require.NoError(t, err)
	}
	return &domain.TableInfo{
		Name:    "t",
		Columns: []domain.ColumnInfo{{Name: "name", Type: "text"}, {Name: "score", Type: "double"}},
		Heap:    heap,
	}
}

func drain(t *testing.T, op Operator) []domain.Row {
	t.Helper()
	require.NoError(t, op.Init())
	var rows []domain.Row
	var row domain.Row
	var rid domain.RID
	for {
		ok, err := op.Next(&row, &rid)
		require.NoError(t, err)
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

func TestSeqScanSkipsDeleted(t *testing.T) {
	table := newTestTable(t, domain.Row{"name": "a"}, domain.Row{"name": "b"}, domain.Row{"name": "c"})
	table.Heap.(*memory.TableHeap).MarkDeleted(domain.RID{PageID: 1, Slot: 1})

	rows := drain(t, NewSeqScanOperator(table, nil))
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["name"])
	assert.Equal(t, "c", rows[1]["name"])
}

func TestLimitCapsRows(t *testing.T) {
	table := newTestTable(t, domain.Row{"name": "a"}, domain.Row{"name": "b"}, domain.Row{"name": "c"})
	op := NewLimitOperator(NewSeqScanOperator(table, nil), 2)
	rows := drain(t, op)
	assert.Len(t, rows, 2)
}

func TestSortOrdersByExpression(t *testing.T) {
	table := newTestTable(t,
		domain.Row{"name": "a", "score": 3.0},
		domain.Row{"name": "b", "score": 1.0},
		domain.Row{"name": "c", "score": 2.0},
	)
	op := NewSortOperator(NewSeqScanOperator(table, nil), []SortKey{
		{Expr: &expression.ColumnExpression{Column: "score"}},
	})
	rows := drain(t, op)
	require.Len(t, rows, 3)
	assert.Equal(t, "b", rows[0]["name"])
	assert.Equal(t, "c", rows[1]["name"])
	assert.Equal(t, "a", rows[2]["name"])
}

func TestSortDescending(t *testing.T) {
	table := newTestTable(t,
		domain.Row{"name": "a", "score": 3.0},
		domain.Row{"name": "b", "score": 1.0},
	)
	op := NewSortOperator(NewSeqScanOperator(table, nil), []SortKey{
		{Expr: &expression.ColumnExpression{Column: "score"}, Descending: true},
	})
	rows := drain(t, op)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["name"])
}

func TestInsertFansOutToIndexes(t *testing.T) {
	target := newTestTable(t)
	idx, err := memory.NewHNSWIndex("embedding", &memory.VectorIndexConfig{
		MetricType: memory.VectorMetricL2,
		Dimension:  2,
		Params:     map[string]interface{}{"m": 4, "ef_construction": 50, "ef_search": 20},
	})
	require.NoError(t, err)
	target.Indexes = []*domain.IndexInfo{{
		Name: "docs.embedding", TableName: "t", ColumnName: "embedding", Index: idxHandle{idx},
	}}

	source := newTestTable(t, domain.Row{"name": "a", "embedding": []float32{1, 2}})
	insert := NewInsertOperator(NewSeqScanOperator(source, nil), target)
	rows := drain(t, insert)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0]["rows_inserted"])

	rids, err := idx.ScanVectorKey([]float32{1, 2}, 1)
	require.NoError(t, err)
	assert.Len(t, rids, 1)
}

type idxHandle struct {
	idx memory.VectorIndex
}

func (h idxHandle) InsertVectorEntry(vector []float32, rid domain.RID) error {
	return h.idx.InsertVectorEntry(vector, rid)
}

func TestVectorScanReturnsRowsByRID(t *testing.T) {
	table := newTestTable(t,
		domain.Row{"name": "a", "embedding": []float32{0, 0}},
		domain.Row{"name": "b", "embedding": []float32{100, 100}},
	)
	idx, err := memory.NewHNSWIndex("embedding", &memory.VectorIndexConfig{
		MetricType: memory.VectorMetricL2,
		Dimension:  2,
		Params:     map[string]interface{}{"m": 4, "ef_construction": 50, "ef_search": 20},
	})
	require.NoError(t, err)
	require.NoError(t, idx.BuildIndex([]memory.VectorEntry{
		{Vector: []float32{0, 0}, RID: domain.RID{PageID: 1, Slot: 0}},
		{Vector: []float32{100, 100}, RID: domain.RID{PageID: 1, Slot: 1}},
	}))

	op := NewVectorScanOperator(table, "embedding", []float32{0, 0}, 1, idx)
	rows := drain(t, op)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0]["name"])
}
