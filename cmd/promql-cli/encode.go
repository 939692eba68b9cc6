package main

import (
	"math"

	"github.com/go-faster/jx"

	"github.com/go-faster/promql"
)

// encodeExpr renders the AST as JSON.
func encodeExpr(expr promql.Expr) ([]byte, error) {
	e := &jx.Encoder{}
	writeExpr(e, expr)
	return e.Bytes(), nil
}

func writeExpr(e *jx.Encoder, expr promql.Expr) {
	switch n := expr.(type) {
	case *promql.NumberLiteral:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "number")
			e.Field("value", func(e *jx.Encoder) { writeFloat(e, n.Val) })
		})
	case *promql.StringLiteral:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "string")
			e.Field("value", func(e *jx.Encoder) { e.Str(n.Val) })
		})
	case *promql.VectorSelector:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "vector_selector")
			if n.Name != "" {
				e.Field("name", func(e *jx.Encoder) { e.Str(n.Name) })
			}
			if len(n.Matchers) > 0 {
				e.Field("matchers", func(e *jx.Encoder) {
					e.Arr(func(e *jx.Encoder) {
						for _, m := range n.Matchers {
							writeMatcher(e, m)
						}
					})
				})
			}
		})
	case *promql.MatrixSelector:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "matrix_selector")
			e.Field("vector", func(e *jx.Encoder) { writeExpr(e, n.Vector) })
			e.Field("range", func(e *jx.Encoder) { e.Str(promql.FormatDuration(n.Range)) })
		})
	case *promql.SubqueryExpr:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "subquery")
			e.Field("expr", func(e *jx.Encoder) { writeExpr(e, n.Expr) })
			e.Field("range", func(e *jx.Encoder) { e.Str(promql.FormatDuration(n.Range)) })
			if n.Step != 0 {
				e.Field("step", func(e *jx.Encoder) { e.Str(promql.FormatDuration(n.Step)) })
			}
		})
	case *promql.OffsetExpr:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "offset")
			e.Field("expr", func(e *jx.Encoder) { writeExpr(e, n.Expr) })
			e.Field("offset", func(e *jx.Encoder) { e.Str(promql.FormatDuration(n.Offset)) })
		})
	case *promql.ParenExpr:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "paren")
			e.Field("expr", func(e *jx.Encoder) { writeExpr(e, n.Expr) })
		})
	case *promql.UnaryExpr:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "unary")
			e.Field("op", func(e *jx.Encoder) { e.Str(n.Op.String()) })
			e.Field("expr", func(e *jx.Encoder) { writeExpr(e, n.Expr) })
		})
	case *promql.Call:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "call")
			e.Field("func", func(e *jx.Encoder) { e.Str(n.Func.Name) })
			e.Field("args", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, arg := range n.Args {
						writeExpr(e, arg)
					}
				})
			})
		})
	case *promql.AggregateExpr:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "aggregate")
			e.Field("op", func(e *jx.Encoder) { e.Str(n.Op.Name) })
			if n.Param != nil {
				e.Field("param", func(e *jx.Encoder) { writeExpr(e, n.Param) })
			}
			e.Field("expr", func(e *jx.Encoder) { writeExpr(e, n.Expr) })
			if len(n.Grouping) > 0 || n.Without {
				e.Field("grouping", func(e *jx.Encoder) {
					e.Arr(func(e *jx.Encoder) {
						for _, l := range n.Grouping {
							e.Str(l)
						}
					})
				})
				e.Field("without", func(e *jx.Encoder) { e.Bool(n.Without) })
			}
		})
	case *promql.BinaryExpr:
		e.Obj(func(e *jx.Encoder) {
			writeType(e, "binary")
			e.Field("op", func(e *jx.Encoder) { e.Str(n.Op.String()) })
			if s := n.Matching.String(); s != "" {
				e.Field("matching", func(e *jx.Encoder) { e.Str(s) })
			}
			e.Field("lhs", func(e *jx.Encoder) { writeExpr(e, n.LHS) })
			e.Field("rhs", func(e *jx.Encoder) { writeExpr(e, n.RHS) })
		})
	}
}

func writeMatcher(e *jx.Encoder, m *promql.LabelMatcher) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(m.Name) })
		e.Field("op", func(e *jx.Encoder) { e.Str(m.Op.String()) })
		e.Field("value", func(e *jx.Encoder) { e.Str(m.Value.Val) })
	})
}

func writeType(e *jx.Encoder, name string) {
	e.Field("type", func(e *jx.Encoder) { e.Str(name) })
}

func writeFloat(e *jx.Encoder, v float64) {
	// Inf and NaN are not valid JSON numbers.
	if math.IsInf(v, 0) || math.IsNaN(v) {
		e.Str(formatSpecial(v))
		return
	}
	e.Float64(v)
}

func formatSpecial(v float64) string {
	switch {
	case math.IsInf(v, +1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return "NaN"
	}
}
