package promql

import (
	"text/scanner"
	"time"
)

// Span is a byte range of query source covered by a node.
type Span struct {
	// Pos is the position of the first byte.
	Pos scanner.Position
	// End is the byte offset right after the node, exclusive.
	End int
}

// Node is an AST node.
type Node interface {
	// Span returns the source range the node was parsed from. Nodes
	// constructed by hand may have a zero span.
	Span() Span
}

// Expr is a PromQL expression.
//
// The set of implementations is closed: Visit, Children, the printer
// and the type checker switch over the variants. A new variant must be
// added to all of them.
type Expr interface {
	Node
	// Type returns the value type the expression evaluates to. It is
	// derived from the structure alone; TypeCheck validates that the
	// structure is sound.
	Type() ValueType

	expr()
}

func (*NumberLiteral) expr()  {}
func (*StringLiteral) expr()  {}
func (*VectorSelector) expr() {}
func (*MatrixSelector) expr() {}
func (*SubqueryExpr) expr()   {}
func (*OffsetExpr) expr()     {}
func (*ParenExpr) expr()      {}
func (*UnaryExpr) expr()      {}
func (*Call) expr()           {}
func (*AggregateExpr) expr()  {}
func (*BinaryExpr) expr()     {}

// NumberLiteral is a scalar literal, possibly Inf or NaN.
type NumberLiteral struct {
	Val float64

	At Span
}

// Span implements Node.
func (e *NumberLiteral) Span() Span { return e.At }

// Type implements Expr.
func (e *NumberLiteral) Type() ValueType { return ValueTypeScalar }

// StringLiteral is a string literal.
type StringLiteral struct {
	// Quote is the quote character the literal was written with, one
	// of '\'', '"' or '`'. The printer re-emits the same kind.
	Quote byte
	Val   string

	At Span
}

// Span implements Node.
func (e *StringLiteral) Span() Span { return e.At }

// Type implements Expr.
func (e *StringLiteral) Type() ValueType { return ValueTypeString }

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Expr Expr

	At Span
}

// Span implements Node.
func (e *ParenExpr) Span() Span { return e.At }

// Type implements Expr.
func (e *ParenExpr) Type() ValueType { return e.Expr.Type() }

// UnaryExpr is a unary '+' or '-' applied to an expression.
type UnaryExpr struct {
	Op   BinOp // OpAdd or OpSub
	Expr Expr

	At Span
}

// Span implements Node.
func (e *UnaryExpr) Span() Span { return e.At }

// Type implements Expr.
func (e *UnaryExpr) Type() ValueType { return e.Expr.Type() }

// SubqueryExpr is the expr[range:step] form evaluating an instant
// query over a range.
type SubqueryExpr struct {
	Expr  Expr
	Range time.Duration
	// Step is zero when omitted, which means the default resolution.
	Step time.Duration

	At Span
}

// Span implements Node.
func (e *SubqueryExpr) Span() Span { return e.At }

// Type implements Expr.
func (e *SubqueryExpr) Type() ValueType { return ValueTypeMatrix }

// OffsetExpr shifts a selector or subquery in time.
type OffsetExpr struct {
	// Expr is a *VectorSelector, *MatrixSelector or *SubqueryExpr,
	// enforced by the parser.
	Expr Expr
	// Offset may be negative.
	Offset time.Duration

	At Span
}

// Span implements Node.
func (e *OffsetExpr) Span() Span { return e.At }

// Type implements Expr.
func (e *OffsetExpr) Type() ValueType { return e.Expr.Type() }

// BinaryExpr is a binary operation between two expressions.
type BinaryExpr struct {
	Op       BinOp
	LHS, RHS Expr
	// Matching is nil when no matching modifier was given.
	Matching *VectorMatching

	At Span
}

// Span implements Node.
func (e *BinaryExpr) Span() Span { return e.At }

// Type implements Expr.
func (e *BinaryExpr) Type() ValueType {
	if e.LHS.Type() == ValueTypeScalar && e.RHS.Type() == ValueTypeScalar {
		return ValueTypeScalar
	}
	return ValueTypeVector
}

// UnparenExpr recursively extracts expression from parentheses.
func UnparenExpr(e Expr) Expr {
	p, ok := e.(*ParenExpr)
	if !ok {
		return e
	}
	return UnparenExpr(p.Expr)
}
