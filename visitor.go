package promql

import "github.com/go-faster/errors"

// Visitor has one method per expression variant.
//
// Implementations drive recursion themselves, typically by calling
// Visit on child expressions. The printer is built on this interface;
// external analyzers implement it without touching the core.
type Visitor interface {
	VisitNumberLiteral(e *NumberLiteral) error
	VisitStringLiteral(e *StringLiteral) error
	VisitVectorSelector(e *VectorSelector) error
	VisitMatrixSelector(e *MatrixSelector) error
	VisitSubqueryExpr(e *SubqueryExpr) error
	VisitOffsetExpr(e *OffsetExpr) error
	VisitParenExpr(e *ParenExpr) error
	VisitUnaryExpr(e *UnaryExpr) error
	VisitCall(e *Call) error
	VisitAggregateExpr(e *AggregateExpr) error
	VisitBinaryExpr(e *BinaryExpr) error
}

// Visit dispatches expr to the matching Visitor method.
func Visit(v Visitor, expr Expr) error {
	switch e := expr.(type) {
	case *NumberLiteral:
		return v.VisitNumberLiteral(e)
	case *StringLiteral:
		return v.VisitStringLiteral(e)
	case *VectorSelector:
		return v.VisitVectorSelector(e)
	case *MatrixSelector:
		return v.VisitMatrixSelector(e)
	case *SubqueryExpr:
		return v.VisitSubqueryExpr(e)
	case *OffsetExpr:
		return v.VisitOffsetExpr(e)
	case *ParenExpr:
		return v.VisitParenExpr(e)
	case *UnaryExpr:
		return v.VisitUnaryExpr(e)
	case *Call:
		return v.VisitCall(e)
	case *AggregateExpr:
		return v.VisitAggregateExpr(e)
	case *BinaryExpr:
		return v.VisitBinaryExpr(e)
	default:
		return errors.Errorf("unexpected expression %T", expr)
	}
}
