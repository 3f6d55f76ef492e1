package memory

import (
	"sync"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
)

// TableHeap is a slice-backed implementation of domain.TableHeap: tuples
// live in an append-only slice, indexed by their position (the RID's Slot).
// A real engine pages this to disk; this module only needs something that
// satisfies the interface for the executor tree to pull from and insert
// into during tests and in-process use.
type TableHeap struct {
	mu     sync.RWMutex
	pageID int64
	tuples []domain.Row
	meta   []domain.TupleMeta
}

// NewTableHeap returns an empty heap. pageID is carried through every RID
// it mints — callers that keep several heaps can give each a distinct
// pageID to keep RIDs from colliding across tables.
func NewTableHeap(pageID int64) *TableHeap {
	return &TableHeap{pageID: pageID}
}

func (h *TableHeap) InsertTuple(row domain.Row) (domain.RID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	slot := int32(len(h.tuples))
	h.tuples = append(h.tuples, row)
	h.meta = append(h.meta, domain.TupleMeta{})
	return domain.RID{PageID: h.pageID, Slot: slot}, nil
}

// MarkDeleted flags the tuple at rid as deleted, so SeqScan skips it.
func (h *TableHeap) MarkDeleted(rid domain.RID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if rid.PageID != h.pageID || int(rid.Slot) >= len(h.meta) {
		return
	}
	h.meta[rid.Slot].IsDeleted = true
}

func (h *TableHeap) Iterator() domain.HeapIterator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return &tableHeapIterator{heap: h, pos: -1}
}

type tableHeapIterator struct {
	heap *TableHeap
	pos  int
}

func (it *tableHeapIterator) Next() bool {
	it.heap.mu.RLock()
	defer it.heap.mu.RUnlock()
	it.pos++
	return it.pos < len(it.heap.tuples)
}

func (it *tableHeapIterator) Tuple() (domain.Row, domain.TupleMeta) {
	it.heap.mu.RLock()
	defer it.heap.mu.RUnlock()
	return it.heap.tuples[it.pos], it.heap.meta[it.pos]
}

func (it *tableHeapIterator) RID() domain.RID {
	return domain.RID{PageID: it.heap.pageID, Slot: int32(it.pos)}
}
