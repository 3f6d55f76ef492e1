package operators

import (
	"sort"

	"github.com/kasuganosora/vectordb/pkg/expression"
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// SortKey pairs a sort-key expression with its direction.
type SortKey struct {
	Expr       expression.Expression
	Descending bool
}

// SortOperator drains its child into memory, sorts by OrderBy (earlier
// keys take priority; ties fall through to the next key), and replays the
// sorted rows.
type SortOperator struct {
	child   Operator
	orderBy []SortKey
	schema  []domain.ColumnInfo

	rows []domain.Row
	rids []domain.RID
	pos  int
}

func NewSortOperator(child Operator, orderBy []SortKey) *SortOperator {
	return &SortOperator{child: child, orderBy: orderBy, schema: child.Schema()}
}

func (op *SortOperator) Init() error {
	if err := op.child.Init(); err != nil {
		return err
	}

	var row domain.Row
	var rid domain.RID
	for {
		ok, err := op.child.Next(&row, &rid)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		op.rows = append(op.rows, row)
		op.rids = append(op.rids, rid)
	}

	indices := make([]int, len(op.rows))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return op.less(indices[i], indices[j])
	})

	sortedRows := make([]domain.Row, len(indices))
	sortedRIDs := make([]domain.RID, len(indices))
	for i, idx := range indices {
		sortedRows[i] = op.rows[idx]
		sortedRIDs[i] = op.rids[idx]
	}
	op.rows = sortedRows
	op.rids = sortedRIDs
	return nil
}

func (op *SortOperator) less(i, j int) bool {
	for _, key := range op.orderBy {
		vi, errI := key.Expr.Evaluate(op.rows[i])
		vj, errJ := key.Expr.Evaluate(op.rows[j])
		if errI != nil || errJ != nil {
			continue
		}
		cmp := vi.Compare(vj)
		if cmp == 0 {
			continue
		}
		if key.Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func (op *SortOperator) Next(row *domain.Row, rid *domain.RID) (bool, error) {
	if op.pos >= len(op.rows) {
		return false, nil
	}
	*row = op.rows[op.pos]
	*rid = op.rids[op.pos]
	op.pos++
	return true, nil
}

func (op *SortOperator) Schema() []domain.ColumnInfo { return op.schema }
