package memory

import (
	"testing"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHeapInsertAndIterate(t *testing.T) {
	h := NewTableHeap(1)

	rid1, err := h.InsertTuple(domain.Row{"name": "alice"})
	require.NoError(t, err)
	rid2, err := h.InsertTuple(domain.Row{"name": "bob"})
	require.NoError(t, err)
	assert.NotEqual(t, rid1, rid2)

	var names []string
	it := h.Iterator()
	for it.Next() {
		row, meta := it.Tuple()
		assert.False(t, meta.IsDeleted)
		names = append(names, row["name"].(string))
	}
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func TestTableHeapSkipsDeleted(t *testing.T) {
	h := NewTableHeap(1)
	rid1, _ := h.InsertTuple(domain.Row{"name": "alice"})
	_, _ = h.InsertTuple(domain.Row{"name": "bob"})
	h.MarkDeleted(rid1)

	var names []string
	it := h.Iterator()
	for it.Next() {
		row, meta := it.Tuple()
		if meta.IsDeleted {
			continue
		}
		names = append(names, row["name"].(string))
	}
	assert.Equal(t, []string{"bob"}, names)
}
