package operators

import (
	"github.com/kasuganosora/vectordb/pkg/expression"
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// SeqScanOperator walks a table heap in storage order, skipping deleted
// tuples and, if filter is set, any row the predicate evaluates to
// non-null false for.
type SeqScanOperator struct {
	table  *domain.TableInfo
	filter expression.Expression
	iter   domain.HeapIterator
	schema []domain.ColumnInfo
}

// NewSeqScanOperator scans table's heap. filter may be nil for an
// unconditional scan.
func NewSeqScanOperator(table *domain.TableInfo, filter expression.Expression) *SeqScanOperator {
	return &SeqScanOperator{table: table, filter: filter, schema: table.Columns}
}

func (op *SeqScanOperator) Init() error {
	op.iter = op.table.Heap.Iterator()
	return nil
}

func (op *SeqScanOperator) Next(row *domain.Row, rid *domain.RID) (bool, error) {
	for op.iter.Next() {
		r, meta := op.iter.Tuple()
		if meta.IsDeleted {
			continue
		}
		if op.filter != nil {
			v, err := op.filter.Evaluate(r)
			if err == nil && v.IsFalse() {
				continue
			}
		}
		*row = r
		*rid = op.iter.RID()
		return true, nil
	}
	return false, nil
}

func (op *SeqScanOperator) Schema() []domain.ColumnInfo { return op.schema }
