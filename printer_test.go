package promql

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`42`, `42`},
		{`1e6`, `1e+06`},
		{`-1.5`, `-1.5`},
		{`Inf`, `Inf`},
		{`-inF`, `-Inf`},
		{`NaN`, `NaN`},
		{`"foo"`, `"foo"`},
		{`'foo'`, `'foo'`},
		{"`foo`", "`foo`"},
		{`"tab\there"`, `"tab\there"`},
		{`{}`, `{}`},
		{`foo`, `foo`},
		{`foo{bar="baz"}`, `foo{bar="baz"}`},
		{`foo{ a = "1" , b != '2', c =~ "3", d !~ "4" }`, `foo{a="1", b!='2', c=~"3", d!~"4"}`},
		{`foo[5m]`, `foo[5m]`},
		{`foo[90m]`, `foo[1h30m]`},
		{`foo[1h:5m]`, `foo[1h:5m]`},
		{`foo[1h:]`, `foo[1h:]`},
		{`foo offset 10m`, `foo offset 10m`},
		{`foo offset -10m`, `foo offset -10m`},
		// Weeks are parsed but never printed.
		{`foo[5m] offset 1w`, `foo[5m] offset 7d`},
		{`metric[ 1h:1m ] offset 1w`, `metric[1h:1m] offset 7d`},
		{`rate(foo[5m])`, `rate(foo[5m])`},
		{`time()`, `time()`},
		{`round( foo , 5 )`, `round(foo, 5)`},
		{`sum(foo)`, `sum(foo)`},
		{`sum by(job,mode) (foo)`, `sum by (job, mode) (foo)`},
		{`sum (foo) without(instance)`, `sum without (instance) (foo)`},
		{`topk(5, foo)`, `topk(5, foo)`},
		{`quantile(0.9,sum by(job)(foo))`, `quantile(0.9, sum by (job) (foo))`},
		{`a+b*c`, `a + b * c`},
		{`1 > bool 1`, `1 > bool 1`},
		{`foo / on(job) bar`, `foo / on (job) bar`},
		{`foo / ignoring(job) bar`, `foo / ignoring (job) bar`},
		{`foo == bool ignoring(job) group_left(extra) bar`, `foo == bool ignoring (job) group_left (extra) bar`},
		{`foo * on() group_right bar`, `foo * on () group_right bar`},
		{`-vector(1)`, `-vector(1)`},
		{`( foo )`, `(foo)`},
		{
			`sum by(job, mode) (rate(node_cpu_seconds_total[1m])) / on(job) group_left sum by(job)(rate(node_cpu_seconds_total[1m]))`,
			`sum by (job, mode) (rate(node_cpu_seconds_total[1m])) / on (job) group_left sum by (job) (rate(node_cpu_seconds_total[1m]))`,
		},
		{
			`(another_metric{one='test',two!='test2'}[1h][1d:5m]) + -vector(this_is_a_metric offset 5m)`,
			`(another_metric{one='test', two!='test2'}[1h][1d:5m]) + -vector(this_is_a_metric offset 5m)`,
		},
	}
	for i, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, Print(expr))
		})
	}
}

func TestPrintStringEscapes(t *testing.T) {
	lit := &StringLiteral{Quote: '"', Val: "a\"b'c\\d\n\t\a\b\f\r\v"}
	got := Print(lit)
	require.Equal(t, `"a\"b\'c\\d\n\t\a\b\f\r\v"`, got)

	// The escaped form must parse back to the same value.
	expr, err := Parse(got)
	require.NoError(t, err)
	require.Equal(t, lit.Val, expr.(*StringLiteral).Val)
}

func TestPrintNumbers(t *testing.T) {
	for _, v := range []float64{0, 1, 0.1, 123456789, 1e-9, math.MaxFloat64} {
		got := Print(&NumberLiteral{Val: v})
		expr, err := Parse(got)
		require.NoError(t, err)
		require.Equal(t, v, expr.(*NumberLiteral).Val)
	}

	require.Equal(t, "Inf", Print(&NumberLiteral{Val: math.Inf(1)}))
	// Negative infinity only comes up in hand-built trees: the parser
	// produces a unary minus instead.
	require.Equal(t, "-Inf", Print(&NumberLiteral{Val: math.Inf(-1)}))
	require.Equal(t, "NaN", Print(&NumberLiteral{Val: math.NaN()}))
}

func TestPrintMatcher(t *testing.T) {
	m := &LabelMatcher{
		Name:  "job",
		Op:    MatchRegexp,
		Value: str('"', "api|web"),
	}
	require.Equal(t, `job=~"api|web"`, Print(m))
}
