package domain

// Row 行数据
type Row map[string]interface{}

// ColumnInfo 列信息
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Primary  bool   `json:"primary"`
}

// TableInfo describes a table as seen by the catalog: its schema plus the
// indexes (vector or otherwise) built over it. The executor layer never
// touches storage directly — it asks the catalog for a TableInfo and goes
// through Heap.
type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
	Heap    TableHeap    `json:"-"`
	Indexes []*IndexInfo `json:"-"`
}
