package operators

import "github.com/kasuganosora/vectordb/pkg/resource/domain"

// LimitOperator passes through up to Limit rows from its child, then stops
// pulling.
type LimitOperator struct {
	child   Operator
	limit   int
	emitted int
}

func NewLimitOperator(child Operator, limit int) *LimitOperator {
	return &LimitOperator{child: child, limit: limit}
}

func (op *LimitOperator) Init() error {
	return op.child.Init()
}

func (op *LimitOperator) Next(row *domain.Row, rid *domain.RID) (bool, error) {
	if op.emitted >= op.limit {
		return false, nil
	}
	ok, err := op.child.Next(row, rid)
	if err != nil || !ok {
		return false, err
	}
	op.emitted++
	return true, nil
}

func (op *LimitOperator) Schema() []domain.ColumnInfo { return op.child.Schema() }
