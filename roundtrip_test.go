package promql

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// Queries that parse; used for round-trip and traversal properties.
var roundTripCorpus = []string{
	`42`,
	`Inf`,
	`"foo"`,
	`{}`,
	`foo`,
	`job:http_errors:rate5m`,
	`foo{bar="baz"}`,
	`{instance=~"web-.+", job!='api'}`,
	`foo[5m]`,
	`foo[1h30m]`,
	`foo[1h:5m]`,
	`foo[1h:]`,
	`foo offset 10m`,
	`foo offset -10m`,
	`foo[5m] offset 1w`,
	`metric[ 1h:1m ] offset 1w`,
	`rate(http_requests_total[5m])`,
	`round(foo, 5)`,
	`label_join(foo, "dst", "-", "a", "b")`,
	`time()`,
	`sum(foo)`,
	`sum by (job, mode) (foo)`,
	`sum without () (foo)`,
	`topk(5, foo)`,
	`count_values("version", foo)`,
	`a + b * c`,
	`2 ^ 3 ^ 2`,
	`a or b and c unless d`,
	`1 > bool 1`,
	`foo / on (job) bar`,
	`foo * ignoring (instance) group_right (cpu) bar`,
	`-vector(1)`,
	`(foo + bar)`,
	`sum by(job, mode) (rate(node_cpu_seconds_total[1m])) / on(job) group_left sum by(job)(rate(node_cpu_seconds_total[1m]))`,
	`(another_metric{one='test',two!='test2'}[1h][1d:5m]) + -vector(this_is_a_metric offset 5m)`,
}

// Parsing the printed form yields a structurally equal tree, and
// printing is idempotent from there on.
func TestRoundTrip(t *testing.T) {
	for i, input := range roundTripCorpus {
		input := input
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			first, err := Parse(input)
			require.NoError(t, err)

			printed := Print(first)
			second, err := Parse(printed)
			require.NoError(t, err, "printed: %s", printed)

			diff := cmp.Diff(first, second, cmpopts.IgnoreTypes(Span{}))
			require.Empty(t, diff, "printed: %s", printed)

			require.Equal(t, printed, Print(second))
		})
	}
}

// Every keyword-like name parses as a label name inside braces and in
// grouping lists.
func TestKeywordsAsLabelNames(t *testing.T) {
	keywords := []string{
		// Aggregation operators.
		"sum", "avg", "count", "min", "max", "group",
		"stddev", "stdvar", "count_values", "bottomk", "topk", "quantile",
		// Function names.
		"rate", "abs", "absent", "histogram_quantile", "label_replace",
		// Operator keywords.
		"and", "or", "unless", "atan2",
		// Grouping and modifier keywords.
		"by", "without", "on", "ignoring", "group_left", "group_right",
		"bool", "offset",
	}
	for _, k := range keywords {
		k := k
		t.Run(k, func(t *testing.T) {
			expr, err := Parse(fmt.Sprintf(`{%s="value"}`, k))
			require.NoError(t, err)

			sel, ok := expr.(*VectorSelector)
			require.True(t, ok)
			require.Len(t, sel.Matchers, 1)
			require.Equal(t, k, sel.Matchers[0].Name)

			expr, err = Parse(fmt.Sprintf(`{__name__='%s'}`, k))
			require.NoError(t, err)
			sel, ok = expr.(*VectorSelector)
			require.True(t, ok)
			require.Len(t, sel.Matchers, 1)

			expr, err = Parse(fmt.Sprintf(`sum by (%s) (foo)`, k))
			require.NoError(t, err)
			agg, ok := expr.(*AggregateExpr)
			require.True(t, ok)
			require.Equal(t, []string{k}, agg.Grouping)
		})
	}
}

// Spans of children are contained in the spans of their parents.
func TestSpanContainment(t *testing.T) {
	for i, input := range roundTripCorpus {
		input := input
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			expr, err := Parse(input)
			require.NoError(t, err)

			var walk func(parent Node)
			walk = func(parent Node) {
				sp := parent.Span()
				for _, c := range Children(parent) {
					csp := c.Span()
					require.GreaterOrEqual(t, csp.Pos.Offset, sp.Pos.Offset,
						"child %T of %T", c, parent)
					require.LessOrEqual(t, csp.End, sp.End,
						"child %T of %T", c, parent)
					walk(c)
				}
			}
			walk(expr)
		})
	}
}

func TestInspect(t *testing.T) {
	expr, err := Parse(`sum by (job) (rate(foo{bar="baz"}[5m]))`)
	require.NoError(t, err)

	var selectors, matchers int
	Inspect(expr, func(n Node) bool {
		switch n.(type) {
		case *VectorSelector:
			selectors++
		case *LabelMatcher:
			matchers++
		}
		return true
	})
	require.Equal(t, 1, selectors)
	require.Equal(t, 1, matchers)

	// Returning false prunes the subtree.
	var seen int
	Inspect(expr, func(n Node) bool {
		seen++
		return false
	})
	require.Equal(t, 1, seen)
}

func TestVisitClosed(t *testing.T) {
	// Visit dispatches every variant the parser can produce.
	for _, input := range roundTripCorpus {
		expr, err := Parse(input)
		require.NoError(t, err)
		require.NoError(t, Visit(countingVisitor{}, expr))
	}
}

type countingVisitor struct{}

func (countingVisitor) VisitNumberLiteral(*NumberLiteral) error   { return nil }
func (countingVisitor) VisitStringLiteral(*StringLiteral) error   { return nil }
func (countingVisitor) VisitVectorSelector(*VectorSelector) error { return nil }
func (countingVisitor) VisitMatrixSelector(*MatrixSelector) error { return nil }
func (countingVisitor) VisitSubqueryExpr(*SubqueryExpr) error     { return nil }
func (countingVisitor) VisitOffsetExpr(*OffsetExpr) error         { return nil }
func (countingVisitor) VisitParenExpr(*ParenExpr) error           { return nil }
func (countingVisitor) VisitUnaryExpr(*UnaryExpr) error           { return nil }
func (countingVisitor) VisitCall(*Call) error                     { return nil }
func (countingVisitor) VisitAggregateExpr(*AggregateExpr) error   { return nil }
func (countingVisitor) VisitBinaryExpr(*BinaryExpr) error         { return nil }
