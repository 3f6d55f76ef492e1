// Package engine wires the catalog, index manager, and executor operators
// into the small facade a caller actually drives: create a table, attach a
// vector index to one of its columns, insert rows, run a k-nearest-neighbor
// query. It does not parse SQL or speak a wire protocol — those stay the
// job of whatever sits in front of this package.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kasuganosora/vectordb/pkg/config"
	"github.com/kasuganosora/vectordb/pkg/executor"
	"github.com/kasuganosora/vectordb/pkg/executor/operators"
	"github.com/kasuganosora/vectordb/pkg/expression"
	"github.com/kasuganosora/vectordb/pkg/logging"
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/kasuganosora/vectordb/pkg/resource/memory"
	"go.uber.org/zap"
)

// Engine owns every table's heap, schema, and vector indexes.
type Engine struct {
	cfg     *config.Config
	log     *zap.Logger
	indexes *memory.IndexManager
	tables  map[string]*domain.TableInfo
	runtime *executor.Runtime
}

// New builds an engine from cfg. A nil cfg falls back to config.Default().
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		log:     log,
		indexes: memory.NewIndexManager(log),
		tables:  make(map[string]*domain.TableInfo),
		runtime: executor.NewRuntime(),
	}, nil
}

// trackQuery registers a new query with the runtime under a fresh ID and
// returns a done func that unregisters it. Every caller-facing read (Scan,
// VectorQuery) runs under one of these so CancelQuery/GetQueryStatus have
// something to report on while the operator chain is draining.
func (e *Engine) trackQuery() func() {
	id := uuid.NewString()
	_, cancel := context.WithCancel(context.Background())
	e.runtime.RegisterQuery(id, cancel)
	return func() { e.runtime.UnregisterQuery(id) }
}

// CreateTable registers a table with an empty heap.
func (e *Engine) CreateTable(name string, columns []domain.ColumnInfo) (*domain.TableInfo, error) {
	if _, exists := e.tables[name]; exists {
		return nil, fmt.Errorf("table already exists: %s", name)
	}
	table := &domain.TableInfo{
		Name:    name,
		Columns: columns,
		Heap:    memory.NewTableHeap(int64(len(e.tables) + 1)),
	}
	e.tables[name] = table
	return table, nil
}

// CreateVectorIndex attaches a vector index to tableName.columnName,
// applying this engine's configured defaults for any option the caller
// leaves out of opts.Params, and backfilling it from the table's current
// rows. An option present with a zero value is kept and fails validation.
func (e *Engine) CreateVectorIndex(tableName, columnName string, indexType memory.IndexType, opts *memory.VectorIndexConfig) error {
	table, ok := e.tables[tableName]
	if !ok {
		return domain.NewErrTableNotFound(tableName)
	}

	opts = e.applyDefaults(indexType, opts)
	idx, err := e.indexes.CreateVectorIndex(tableName, columnName, indexType, opts)
	if err != nil {
		return err
	}
	table.Indexes = e.indexes.TableIndexes(tableName)

	var initial []memory.VectorEntry
	iter := table.Heap.Iterator()
	for iter.Next() {
		row, meta := iter.Tuple()
		if meta.IsDeleted {
			continue
		}
		vec, ok := row[columnName].([]float32)
		if !ok {
			continue
		}
		initial = append(initial, memory.VectorEntry{Vector: vec, RID: iter.RID()})
	}
	return idx.BuildIndex(initial)
}

func (e *Engine) applyDefaults(indexType memory.IndexType, opts *memory.VectorIndexConfig) *memory.VectorIndexConfig {
	if opts.Params == nil {
		opts.Params = make(map[string]interface{})
	}
	switch indexType {
	case memory.IndexTypeVectorHNSW:
		setDefault(opts.Params, "m", e.cfg.HNSW.M)
		setDefault(opts.Params, "ef_construction", e.cfg.HNSW.EfConstruction)
		setDefault(opts.Params, "ef_search", e.cfg.HNSW.EfSearch)
	case memory.IndexTypeVectorIVFFlat:
		setDefault(opts.Params, "lists", e.cfg.IVF.Lists)
		setDefault(opts.Params, "probe_lists", e.cfg.IVF.ProbeLists)
	}
	return opts
}

func setDefault(params map[string]interface{}, key string, value int) {
	if _, ok := params[key]; !ok {
		params[key] = value
	}
}

// Insert runs an insert of rows into tableName, fanning each row out to
// every vector index on the table.
func (e *Engine) Insert(tableName string, rows []domain.Row) (int64, error) {
	table, ok := e.tables[tableName]
	if !ok {
		return 0, domain.NewErrTableNotFound(tableName)
	}

	source := &rowSliceOperator{rows: rows, schema: table.Columns}
	insert := operators.NewInsertOperator(source, table)
	if err := insert.Init(); err != nil {
		return 0, err
	}
	var row domain.Row
	var rid domain.RID
	ok, err := insert.Next(&row, &rid)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return row["rows_inserted"].(int64), nil
}

// VectorQuery runs a direct top-k nearest-neighbor scan against the vector
// index on tableName.columnName.
func (e *Engine) VectorQuery(tableName, columnName string, query []float32, k int) ([]domain.Row, error) {
	table, ok := e.tables[tableName]
	if !ok {
		return nil, domain.NewErrTableNotFound(tableName)
	}
	idx, ok := e.indexes.GetVectorIndex(tableName, columnName)
	if !ok {
		return nil, fmt.Errorf("no vector index on %s.%s", tableName, columnName)
	}
	defer e.trackQuery()()

	op := operators.NewVectorScanOperator(table, columnName, query, k, idx)
	if err := op.Init(); err != nil {
		return nil, err
	}
	var rows []domain.Row
	var row domain.Row
	var rid domain.RID
	for {
		more, err := op.Next(&row, &rid)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Scan runs SeqScan -> Sort -> Limit over tableName's heap, ordering by
// orderBy (each entry a SortKey, evaluated left to right).
// filter, if non-nil, is evaluated per row by SeqScan; rows it evaluates
// to false for are skipped.
func (e *Engine) Scan(tableName string, filter expression.Expression, orderBy []operators.SortKey, limit int) ([]domain.Row, error) {
	table, ok := e.tables[tableName]
	if !ok {
		return nil, domain.NewErrTableNotFound(tableName)
	}
	defer e.trackQuery()()

	var op operators.Operator = operators.NewSeqScanOperator(table, filter)
	if len(orderBy) > 0 {
		op = operators.NewSortOperator(op, orderBy)
	}
	if limit > 0 {
		op = operators.NewLimitOperator(op, limit)
	}

	if err := op.Init(); err != nil {
		return nil, err
	}
	var rows []domain.Row
	var row domain.Row
	var rid domain.RID
	for {
		more, err := op.Next(&row, &rid)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ColumnDistance builds an expression.Expression for "ORDER BY
// vec_distance(column, query)" against metric.
func ColumnDistance(column string, query []float32, metric memory.VectorMetricType) expression.Expression {
	return &expression.VectorDistanceExpression{Column: column, Query: query, Metric: metric}
}

// rowSliceOperator is the Insert operator's child when the caller hands
// rows directly, rather than via a SeqScan from another table.
type rowSliceOperator struct {
	rows   []domain.Row
	schema []domain.ColumnInfo
	pos    int
}

func (o *rowSliceOperator) Init() error { return nil }

func (o *rowSliceOperator) Next(row *domain.Row, rid *domain.RID) (bool, error) {
	if o.pos >= len(o.rows) {
		return false, nil
	}
	*row = o.rows[o.pos]
	*rid = domain.RID{}
	o.pos++
	return true, nil
}

func (o *rowSliceOperator) Schema() []domain.ColumnInfo { return o.schema }
