package promql

import (
	"fmt"
	"strings"
)

// BinOp defines binary operation.
type BinOp int

const (
	// Set ops.
	OpAnd BinOp = iota + 1
	OpOr
	OpUnless
	// Math ops.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpAtan2
	// Comparison ops.
	OpEq
	OpNotEq
	OpGt
	OpGte
	OpLt
	OpLte
)

// Precedence returns operator precedence.
//
// Higher binds tighter. All operators associate left.
func (op BinOp) Precedence() int {
	switch op {
	case OpOr:
		return 1
	case OpAnd, OpUnless:
		return 2
	case OpEq, OpNotEq, OpGt, OpGte, OpLt, OpLte:
		return 3
	case OpAdd, OpSub:
		return 4
	case OpMul, OpDiv, OpMod, OpAtan2:
		return 5
	case OpPow:
		return 6
	default:
		return -1
	}
}

// String implements fmt.Stringer.
func (op BinOp) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpUnless:
		return "unless"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpAtan2:
		return "atan2"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return fmt.Sprintf("<unknown op %d>", op)
	}
}

// name returns the operator name used in type checker diagnostics.
func (op BinOp) name() string {
	switch op {
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpUnless:
		return "Unless"
	default:
		return op.String()
	}
}

// IsComparison returns whether operation is a comparison.
func (op BinOp) IsComparison() bool {
	switch op {
	case OpEq, OpNotEq, OpGt, OpGte, OpLt, OpLte:
		return true
	default:
		return false
	}
}

// IsSetOperator returns whether operation is a set operation.
func (op BinOp) IsSetOperator() bool {
	switch op {
	case OpAnd, OpOr, OpUnless:
		return true
	default:
		return false
	}
}

// VectorMatchCardinality defines the join cardinality of a binary
// vector-vector operation.
type VectorMatchCardinality int

const (
	CardOneToOne VectorMatchCardinality = iota
	CardManyToOne
	CardOneToMany
)

// String implements fmt.Stringer.
func (c VectorMatchCardinality) String() string {
	switch c {
	case CardManyToOne:
		return "many-to-one"
	case CardOneToMany:
		return "one-to-many"
	default:
		return "one-to-one"
	}
}

// VectorMatching describes the labelled join semantics of a binary
// operation and the bool modifier.
//
// The zero value is the default matching: one-to-one on all labels
// without bool.
type VectorMatching struct {
	Card VectorMatchCardinality
	// MatchingLabels are the labels of the on/ignoring clause.
	MatchingLabels []string
	// On is true for an on clause, false for ignoring.
	On bool
	// Include are the group_left/group_right labels.
	Include []string
	// ReturnBool turns a filtering comparison into a 0/1 valued one.
	ReturnBool bool
}

// IsDefault reports whether the matching carries no information and
// can be omitted when printing.
func (m *VectorMatching) IsDefault() bool {
	return m == nil ||
		m.Card == CardOneToOne &&
			len(m.MatchingLabels) == 0 &&
			!m.On &&
			len(m.Include) == 0 &&
			!m.ReturnBool
}

// String renders the modifier in canonical order: bool, then
// on/ignoring, then group_left/group_right with include labels.
// Empty for the default matching.
func (m *VectorMatching) String() string {
	if m.IsDefault() {
		return ""
	}
	var parts []string
	if m.ReturnBool {
		parts = append(parts, "bool")
	}
	if m.On || len(m.MatchingLabels) > 0 || m.Card != CardOneToOne {
		kw := "ignoring"
		if m.On {
			kw = "on"
		}
		parts = append(parts, kw+" ("+strings.Join(m.MatchingLabels, ", ")+")")
	}
	switch m.Card {
	case CardManyToOne, CardOneToMany:
		g := "group_left"
		if m.Card == CardOneToMany {
			g = "group_right"
		}
		if len(m.Include) > 0 {
			g += " (" + strings.Join(m.Include, ", ") + ")"
		}
		parts = append(parts, g)
	}
	return strings.Join(parts, " ")
}
