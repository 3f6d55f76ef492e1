// Package operators implements the pull-based executor tree: every operator
// is initialized once and then pulled one row at a time, mirroring a
// Volcano-style iterator instead of materializing whole result sets.
package operators

import "github.com/kasuganosora/vectordb/pkg/resource/domain"

// Operator is a node in the executor tree. Init performs one-shot setup
// (opening a scan, draining a child into a sort buffer); Next pulls the
// next row. Next returns false once exhausted — callers must not call it
// again afterward.
type Operator interface {
	Init() error
	// Next writes the next row and its RID into row/rid, returning false
	// when there are no more rows. RID may be the zero value for
	// operators that synthesize rows (Insert's count tuple).
	Next(row *domain.Row, rid *domain.RID) (bool, error)
	Schema() []domain.ColumnInfo
}
