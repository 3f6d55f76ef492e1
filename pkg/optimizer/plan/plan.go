// Package plan defines the small set of plan nodes the executor layer
// knows how to turn into operators: a table scan, a sort, a limit, an
// insert, and an optional direct vector index scan an optimizer pass may
// rewrite Limit(Sort(SeqScan)) into.
package plan

import (
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// Node is any plan node: a tree of operators with a fixed output schema.
type Node interface {
	Schema() []domain.ColumnInfo
	Children() []Node
}

// OrderByTerm pairs a sort key expression with its direction. Expr is left
// as interface{} here to avoid plan depending on the expression package;
// callers type-assert it to expression.Expression when building operators.
type OrderByTerm struct {
	Expr       interface{}
	Descending bool
}

// SeqScanNode reads every (non-deleted) row of a table in heap order,
// skipping any row FilterPredicate evaluates to non-null false for.
// FilterPredicate is left as interface{} here, the same way OrderByTerm.Expr
// is, so plan doesn't depend on the expression package; callers type-assert
// it to expression.Expression when building the SeqScanOperator. Nil means
// no filter.
type SeqScanNode struct {
	TableName       string
	FilterPredicate interface{}
	schema          []domain.ColumnInfo
}

func NewSeqScanNode(tableName string, schema []domain.ColumnInfo, filterPredicate interface{}) *SeqScanNode {
	return &SeqScanNode{TableName: tableName, FilterPredicate: filterPredicate, schema: schema}
}

func (n *SeqScanNode) Schema() []domain.ColumnInfo { return n.schema }
func (n *SeqScanNode) Children() []Node            { return nil }

// SortNode orders its child's rows by OrderBy, evaluated left to right:
// ties on an earlier term fall through to the next.
type SortNode struct {
	Child   Node
	OrderBy []OrderByTerm
}

func NewSortNode(child Node, orderBy []OrderByTerm) *SortNode {
	return &SortNode{Child: child, OrderBy: orderBy}
}

func (n *SortNode) Schema() []domain.ColumnInfo { return n.Child.Schema() }
func (n *SortNode) Children() []Node            { return []Node{n.Child} }

// LimitNode caps its child's output at Limit rows.
type LimitNode struct {
	Child Node
	Limit int
}

func NewLimitNode(child Node, limit int) *LimitNode {
	return &LimitNode{Child: child, Limit: limit}
}

func (n *LimitNode) Schema() []domain.ColumnInfo { return n.Child.Schema() }
func (n *LimitNode) Children() []Node            { return []Node{n.Child} }

// InsertNode inserts every row its child produces into TableName's heap,
// fanning each inserted row out to the table's indexes.
type InsertNode struct {
	TableName string
	Child     Node
	schema    []domain.ColumnInfo
}

func NewInsertNode(tableName string, child Node) *InsertNode {
	return &InsertNode{
		TableName: tableName,
		Child:     child,
		schema:    []domain.ColumnInfo{{Name: "rows_inserted", Type: "bigint"}},
	}
}

func (n *InsertNode) Schema() []domain.ColumnInfo { return n.schema }
func (n *InsertNode) Children() []Node            { return []Node{n.Child} }

// VectorScanNode is a direct top-k scan against a vector index, the
// rewrite target for Limit(Sort(SeqScan)) when the sort key is a distance
// expression over an indexed column.
type VectorScanNode struct {
	TableName  string
	ColumnName string
	Query      []float32
	K          int
	schema     []domain.ColumnInfo
}

func NewVectorScanNode(tableName, columnName string, query []float32, k int, schema []domain.ColumnInfo) *VectorScanNode {
	return &VectorScanNode{TableName: tableName, ColumnName: columnName, Query: query, K: k, schema: schema}
}

func (n *VectorScanNode) Schema() []domain.ColumnInfo { return n.schema }
func (n *VectorScanNode) Children() []Node            { return nil }
