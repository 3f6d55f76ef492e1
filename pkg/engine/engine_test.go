package engine

import (
	"testing"

	"github.com/kasuganosora/vectordb/pkg/executor/operators"
	"github.com/kasuganosora/vectordb/pkg/expression"
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/kasuganosora/vectordb/pkg/resource/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(nil)
	require.NoError(t, err)
	return e
}

func TestEngineCreateTableAndInsert(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateTable("docs", []domain.ColumnInfo{
		{Name: "name", Type: "text"},
		{Name: "embedding", Type: "vector"},
	})
	require.NoError(t, err)

	n, err := e.Insert("docs", []domain.Row{
		{"name": "a", "embedding": []float32{0, 0}},
		{"name": "b", "embedding": []float32{1, 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestEngineVectorIndexBackfillsAndServesQueries(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateTable("docs", []domain.ColumnInfo{
		{Name: "name", Type: "text"},
		{Name: "embedding", Type: "vector"},
	})
	require.NoError(t, err)

	_, err = e.Insert("docs", []domain.Row{
		{"name": "near", "embedding": []float32{0, 0}},
		{"name": "far", "embedding": []float32{50, 50}},
	})
	require.NoError(t, err)

	err = e.CreateVectorIndex("docs", "embedding", memory.IndexTypeVectorHNSW, &memory.VectorIndexConfig{
		MetricType: memory.VectorMetricL2,
		Dimension:  2,
	})
	require.NoError(t, err)

	rows, err := e.VectorQuery("docs", "embedding", []float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "near", rows[0]["name"])

	// Rows inserted after the index exists should also be searchable.
	_, err = e.Insert("docs", []domain.Row{
		{"name": "closest", "embedding": []float32{0, 1}},
	})
	require.NoError(t, err)

	rows, err = e.VectorQuery("docs", "embedding", []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "closest", rows[0]["name"])
}

func TestEngineScanSortLimit(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateTable("scores", []domain.ColumnInfo{
		{Name: "name", Type: "text"},
		{Name: "score", Type: "double"},
	})
	require.NoError(t, err)

	_, err = e.Insert("scores", []domain.Row{
		{"name": "c", "score": 3.0},
		{"name": "a", "score": 1.0},
		{"name": "b", "score": 2.0},
	})
	require.NoError(t, err)

	rows, err := e.Scan("scores", nil, []operators.SortKey{
		{Expr: &expression.ColumnExpression{Column: "score"}},
	}, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["name"])
	assert.Equal(t, "b", rows[1]["name"])
}

func TestEngineScanFiltersRows(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateTable("scores", []domain.ColumnInfo{
		{Name: "name", Type: "text"},
		{Name: "score", Type: "double"},
	})
	require.NoError(t, err)

	_, err = e.Insert("scores", []domain.Row{
		{"name": "c", "score": 3.0},
		{"name": "a", "score": 1.0},
		{"name": "b", "score": 2.0},
	})
	require.NoError(t, err)

	rows, err := e.Scan("scores", &aboveTwoFilter{}, nil, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c", rows[0]["name"])
}

func TestEngineScanSortByVectorDistanceThenLimit(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateTable("points", []domain.ColumnInfo{
		{Name: "name", Type: "text"},
		{Name: "embedding", Type: "vector"},
	})
	require.NoError(t, err)

	_, err = e.Insert("points", []domain.Row{
		{"name": "far", "embedding": []float32{10, 10}},
		{"name": "near", "embedding": []float32{1, 0}},
		{"name": "mid", "embedding": []float32{3, 4}},
	})
	require.NoError(t, err)

	rows, err := e.Scan("points", nil, []operators.SortKey{
		{Expr: &expression.VectorDistanceExpression{
			Column: "embedding",
			Query:  []float32{0, 0},
			Metric: memory.VectorMetricL2,
		}},
	}, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "near", rows[0]["name"])
	assert.Equal(t, "mid", rows[1]["name"])
}

// aboveTwoFilter is a minimal expression.Expression implementation for
// exercising SeqScan's filter predicate: true for rows whose "score" column
// is greater than 2.
type aboveTwoFilter struct{}

func (f *aboveTwoFilter) Evaluate(row domain.Row) (expression.Value, error) {
	score, _ := row["score"].(float64)
	return expression.BoolValue(score > 2), nil
}
