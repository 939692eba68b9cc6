package promql

import (
	"fmt"

	"github.com/go-faster/errors"
)

// TypeCheck computes the value type of expr, validating operator and
// function typing rules along the way.
//
// It is a pure function of the tree: parsing and checking are separate
// so callers may analyze trees that do not type-check.
func TypeCheck(expr Expr) (ValueType, error) {
	if err := checkExpr(expr); err != nil {
		return ValueTypeNone, err
	}
	return expr.Type(), nil
}

func checkExpr(expr Expr) error {
	switch e := expr.(type) {
	case *NumberLiteral, *StringLiteral, *VectorSelector, *MatrixSelector:
		return nil
	case *ParenExpr:
		return checkExpr(e.Expr)
	case *OffsetExpr:
		// The operand kind is already enforced by the parser.
		return checkExpr(e.Expr)
	case *UnaryExpr:
		if err := checkExpr(e.Expr); err != nil {
			return err
		}
		return expectType(e.Expr, ValueTypeScalar, ValueTypeVector)
	case *SubqueryExpr:
		if err := checkExpr(e.Expr); err != nil {
			return err
		}
		return expectType(e.Expr, ValueTypeVector)
	case *Call:
		return checkCall(e)
	case *AggregateExpr:
		return checkAggregateExpr(e)
	case *BinaryExpr:
		return checkBinaryExpr(e)
	default:
		return errors.Errorf("unexpected expression %T", expr)
	}
}

func checkCall(e *Call) error {
	for i, arg := range e.Args {
		if err := checkExpr(arg); err != nil {
			return err
		}
		// Extra variadic arguments take the final catalogued type.
		ti := i
		if ti >= len(e.Func.ArgTypes) {
			ti = len(e.Func.ArgTypes) - 1
		}
		if err := expectType(arg, e.Func.ArgTypes[ti]); err != nil {
			return err
		}
	}
	return nil
}

func checkAggregateExpr(e *AggregateExpr) error {
	if err := checkExpr(e.Expr); err != nil {
		return err
	}
	if err := expectType(e.Expr, ValueTypeVector); err != nil {
		return err
	}
	if e.Op.ParamType == ValueTypeNone {
		return nil
	}
	if e.Param == nil {
		return &TypeError{
			Pos: e.At.Pos,
			Msg: fmt.Sprintf("aggregation operator %q requires a parameter", e.Op.Name),
		}
	}
	if err := checkExpr(e.Param); err != nil {
		return err
	}
	return expectType(e.Param, e.Op.ParamType)
}

func checkBinaryExpr(e *BinaryExpr) error {
	if err := checkExpr(e.LHS); err != nil {
		return err
	}
	if err := checkExpr(e.RHS); err != nil {
		return err
	}
	if err := expectType(e.LHS, ValueTypeScalar, ValueTypeVector); err != nil {
		return err
	}
	if err := expectType(e.RHS, ValueTypeScalar, ValueTypeVector); err != nil {
		return err
	}

	lt, rt := e.LHS.Type(), e.RHS.Type()
	switch {
	case e.Op.IsSetOperator() && (lt == ValueTypeScalar || rt == ValueTypeScalar):
		return &TypeError{
			Pos: e.At.Pos,
			Msg: fmt.Sprintf("set operator %s not allowed in binary scalar expression", e.Op.name()),
		}
	case e.Op.IsComparison() && lt == ValueTypeScalar && rt == ValueTypeScalar &&
		(e.Matching == nil || !e.Matching.ReturnBool):
		return &TypeError{
			Pos: e.At.Pos,
			Msg: "comparisons between scalars must use bool modifier",
		}
	}
	return nil
}

func expectType(e Expr, want ...ValueType) error {
	got := e.Type()
	for _, w := range want {
		if got == w {
			return nil
		}
	}
	return &TypeError{
		Pos:      e.Span().Pos,
		Expected: want,
		Actual:   got,
	}
}
