package promql

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch e := n.(type) {
	case *VectorSelector:
		children := make([]Node, len(e.Matchers))
		for i, m := range e.Matchers {
			children[i] = m
		}
		return children
	case *LabelMatcher:
		if e.Value == nil {
			return nil
		}
		return []Node{e.Value}
	case *MatrixSelector:
		return []Node{e.Vector}
	case *SubqueryExpr:
		return []Node{e.Expr}
	case *OffsetExpr:
		return []Node{e.Expr}
	case *ParenExpr:
		return []Node{e.Expr}
	case *UnaryExpr:
		return []Node{e.Expr}
	case *Call:
		children := make([]Node, len(e.Args))
		for i, arg := range e.Args {
			children[i] = arg
		}
		return children
	case *AggregateExpr:
		var children []Node
		if e.Param != nil {
			children = append(children, e.Param)
		}
		children = append(children, e.Expr)
		return children
	case *BinaryExpr:
		return []Node{e.LHS, e.RHS}
	default:
		return nil
	}
}

// Inspect traverses the tree depth-first in pre-order, calling f for
// every node. If f returns false, children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
