package domain

import "fmt"

// RID identifies a tuple's physical slot inside a table heap. It is opaque
// to every layer above the heap: indexes and executors store and compare
// RIDs but never interpret PageID or Slot.
type RID struct {
	PageID int64
	Slot   int32
}

func (r RID) String() string {
	return fmt.Sprintf("%d:%d", r.PageID, r.Slot)
}

// TupleMeta carries the per-tuple bookkeeping a heap keeps alongside the
// tuple bytes. Readers skip tuples with IsDeleted set.
type TupleMeta struct {
	IsDeleted bool
}

// HeapIterator walks a TableHeap's tuples in storage order. Call Next
// before the first Tuple/RID, the same way a database cursor works.
type HeapIterator interface {
	// Next advances to the next tuple, returning false once exhausted.
	Next() bool
	// Tuple returns the row and its metadata at the current position.
	Tuple() (Row, TupleMeta)
	// RID returns the current tuple's identity.
	RID() RID
}

// TableHeap is the storage collaborator executors pull rows from and push
// inserted rows into. A real engine backs this with paged disk storage;
// this module only consumes the interface.
type TableHeap interface {
	Iterator() HeapIterator
	// InsertTuple appends row to the heap and returns the RID it was
	// assigned.
	InsertTuple(row Row) (RID, error)
}

// VectorIndexHandle is the narrow view of a vector index the catalog and
// executor layer need: enough to fan an inserted row out to every index on
// its table without depending on the index's concrete implementation
// package (avoids an import cycle between domain and memory).
type VectorIndexHandle interface {
	InsertVectorEntry(vector []float32, rid RID) error
}

// IndexInfo is the catalog's view of an index: which column it covers and
// a handle to feed it inserts. An index's own construction options live in
// the memory package's VectorIndexConfig, not here.
type IndexInfo struct {
	Name       string
	TableName  string
	ColumnName string
	Index      VectorIndexHandle
}
