package promql

import "strings"

// AggregateOp is an aggregation operator from the catalogue.
type AggregateOp struct {
	Name string
	// ParamType is the type of the leading parameter argument, or
	// ValueTypeNone when the operator takes none.
	ParamType ValueType
}

// Catalogue of aggregation operators.
//
// Fixed at build time; must not be mutated. Kept in sync with the
// upstream Prometheus parser.
var aggregateOps = map[string]AggregateOp{
	"sum":          {Name: "sum"},
	"avg":          {Name: "avg"},
	"count":        {Name: "count"},
	"min":          {Name: "min"},
	"max":          {Name: "max"},
	"group":        {Name: "group"},
	"stddev":       {Name: "stddev"},
	"stdvar":       {Name: "stdvar"},
	"count_values": {Name: "count_values", ParamType: ValueTypeString},
	"bottomk":      {Name: "bottomk", ParamType: ValueTypeScalar},
	"topk":         {Name: "topk", ParamType: ValueTypeScalar},
	"quantile":     {Name: "quantile", ParamType: ValueTypeScalar},
}

// LookupAggregateOp finds an aggregation operator by name.
//
// The lookup is case-insensitive, matching the lexer.
func LookupAggregateOp(name string) (AggregateOp, bool) {
	op, ok := aggregateOps[strings.ToLower(name)]
	return op, ok
}

// AggregateExpr collapses a vector with optional grouping.
type AggregateExpr struct {
	Op AggregateOp
	// Expr is the vector being aggregated.
	Expr Expr
	// Param is the leading argument of parameterized operators like
	// quantile, nil otherwise.
	Param Expr
	// Grouping is the label list of the by/without clause.
	Grouping []string
	Without  bool

	At Span
}

// Span implements Node.
func (e *AggregateExpr) Span() Span { return e.At }

// Type implements Expr.
func (e *AggregateExpr) Type() ValueType { return ValueTypeVector }
