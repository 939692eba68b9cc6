package promql_test

import (
	"fmt"

	"github.com/go-faster/promql"
)

func ExampleParse() {
	expr, err := promql.Parse(`sum by(job,mode)(rate(node_cpu_seconds_total[1m]))`)
	if err != nil {
		panic(err)
	}
	fmt.Println(promql.Print(expr))
	// Output:
	// sum by (job, mode) (rate(node_cpu_seconds_total[1m]))
}

func ExampleTypeCheck() {
	expr, err := promql.Parse(`1 > 1`)
	if err != nil {
		panic(err)
	}
	if _, err := promql.TypeCheck(expr); err != nil {
		fmt.Println(err)
	}
	// Output:
	// comparisons between scalars must use bool modifier
}

func ExampleInspect() {
	expr, err := promql.Parse(`rate(foo[5m]) / rate(bar[5m])`)
	if err != nil {
		panic(err)
	}

	promql.Inspect(expr, func(n promql.Node) bool {
		if sel, ok := n.(*promql.VectorSelector); ok {
			fmt.Println(sel.Name)
		}
		return true
	})
	// Output:
	// foo
	// bar
}

func ExampleParseError() {
	_, err := promql.Parse(`sum(my_metric[window])`)
	fmt.Println(err)
	// Output:
	// Syntax error (line 1, column 15): unexpected identifier "window", expected duration
}
