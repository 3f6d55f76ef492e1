// Package expression evaluates the small set of scalar expressions the
// executor layer needs: a bare column reference, and a vector's distance to
// a fixed query vector (the sort key a k-nearest-neighbor ORDER BY compiles
// down to). Both implement Expression so Sort can treat them uniformly.
package expression

import (
	"fmt"

	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/kasuganosora/vectordb/pkg/resource/memory"
)

// Expression evaluates to a Value against one row.
type Expression interface {
	Evaluate(row domain.Row) (Value, error)
}

// Value is a three-valued comparison result carrier: numeric values compare
// by magnitude, everything else falls back to string comparison. This
// covers both ORDER BY column and ORDER BY vec_distance(...), plus the
// boolean values a SeqScan filter predicate evaluates to.
type Value struct {
	num    float64
	str    string
	b      bool
	isNum  bool
	isBool bool
}

func NumValue(v float64) Value { return Value{num: v, isNum: true} }
func StrValue(v string) Value  { return Value{str: v} }
func BoolValue(v bool) Value   { return Value{b: v, isBool: true} }

// IsFalse reports whether v is the boolean value false — the condition
// SeqScan's filter predicate skips a row for. A non-boolean (or absent)
// value is never false by this definition, matching the "non-null false"
// wording of the filter contract: anything other than an actual false
// lets the row through.
func (v Value) IsFalse() bool {
	return v.isBool && !v.b
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other. Comparing a numeric Value to a non-numeric one always treats the
// numeric side as greater — callers only ever compare values produced by
// the same expression, so this never actually happens in practice.
func (v Value) Compare(other Value) int {
	if v.isNum && other.isNum {
		switch {
		case v.num < other.num:
			return -1
		case v.num > other.num:
			return 1
		default:
			return 0
		}
	}
	if v.isNum != other.isNum {
		if v.isNum {
			return 1
		}
		return -1
	}
	switch {
	case v.str < other.str:
		return -1
	case v.str > other.str:
		return 1
	default:
		return 0
	}
}

// ColumnExpression evaluates to the named column's value.
type ColumnExpression struct {
	Column string
}

func (c *ColumnExpression) Evaluate(row domain.Row) (Value, error) {
	raw, ok := row[c.Column]
	if !ok {
		return Value{}, fmt.Errorf("column not found: %s", c.Column)
	}
	switch v := raw.(type) {
	case float64:
		return NumValue(v), nil
	case float32:
		return NumValue(float64(v)), nil
	case int:
		return NumValue(float64(v)), nil
	case int64:
		return NumValue(float64(v)), nil
	case string:
		return StrValue(v), nil
	default:
		return StrValue(fmt.Sprintf("%v", v)), nil
	}
}

// VectorDistanceExpression evaluates to the distance between the named
// vector column and a fixed query vector, under metric — the expression a
// "ORDER BY vec_distance(embedding, $query)" compiles to.
type VectorDistanceExpression struct {
	Column string
	Query  []float32
	Metric memory.VectorMetricType
}

func (e *VectorDistanceExpression) Evaluate(row domain.Row) (Value, error) {
	raw, ok := row[e.Column]
	if !ok {
		return Value{}, fmt.Errorf("column not found: %s", e.Column)
	}
	vec, ok := raw.([]float32)
	if !ok {
		return Value{}, fmt.Errorf("column %s is not a vector", e.Column)
	}
	return NumValue(float64(memory.ComputeDistance(vec, e.Query, e.Metric))), nil
}
