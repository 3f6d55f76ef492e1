package operators

import (
	"fmt"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/kasuganosora/vectordb/pkg/resource/memory"
)

// VectorScanOperator answers a top-k nearest-neighbor query directly from a
// vector index, bypassing SeqScan+Sort+Limit entirely. It stands in for
// Limit(Sort(SeqScan)) when the sort key is a distance expression over an
// indexed column; Engine.VectorQuery builds it directly. It looks each
// matching row up through the heap by RID to fill in the rest of the schema.
type VectorScanOperator struct {
	table      *domain.TableInfo
	columnName string
	query      []float32
	k          int
	index      memory.VectorIndex
	schema     []domain.ColumnInfo

	results []domain.RID
	pos     int
}

func NewVectorScanOperator(table *domain.TableInfo, columnName string, query []float32, k int, index memory.VectorIndex) *VectorScanOperator {
	return &VectorScanOperator{
		table:      table,
		columnName: columnName,
		query:      query,
		k:          k,
		index:      index,
		schema:     table.Columns,
	}
}

func (op *VectorScanOperator) Init() error {
	results, err := op.index.ScanVectorKey(op.query, op.k)
	if err != nil {
		return fmt.Errorf("vector scan %s.%s: %w", op.table.Name, op.columnName, err)
	}
	op.results = results
	return nil
}

func (op *VectorScanOperator) Next(row *domain.Row, rid *domain.RID) (bool, error) {
	if op.pos >= len(op.results) {
		return false, nil
	}
	target := op.results[op.pos]
	op.pos++

	iter := op.table.Heap.Iterator()
	for iter.Next() {
		r, meta := iter.Tuple()
		if meta.IsDeleted {
			continue
		}
		if iter.RID() == target {
			*row = r
			*rid = target
			return true, nil
		}
	}
	// The indexed RID no longer resolves to a live tuple; skip it.
	return op.Next(row, rid)
}

func (op *VectorScanOperator) Schema() []domain.ColumnInfo { return op.schema }
