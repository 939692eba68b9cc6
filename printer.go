package promql

import (
	"math"
	"strconv"
	"strings"
)

// Print renders node as canonical single-line PromQL.
//
// The output is parseable and stable: comments, whitespace and
// redundant decorations of the original source are not reproduced.
func Print(node Node) string {
	var p printer
	p.print(node)
	return p.sb.String()
}

// String implements fmt.Stringer.
func (e *NumberLiteral) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *StringLiteral) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *VectorSelector) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *MatrixSelector) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *SubqueryExpr) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *OffsetExpr) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *ParenExpr) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *UnaryExpr) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *Call) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *AggregateExpr) String() string { return Print(e) }

// String implements fmt.Stringer.
func (e *BinaryExpr) String() string { return Print(e) }

// String implements fmt.Stringer.
func (m *LabelMatcher) String() string { return Print(m) }

type printer struct {
	sb strings.Builder
}

func (p *printer) print(node Node) {
	switch n := node.(type) {
	case *LabelMatcher:
		p.printMatcher(n)
	case Expr:
		// The printer never fails: Visit only errors on a variant
		// outside the closed set.
		_ = Visit(p, n)
	}
}

// VisitNumberLiteral implements Visitor.
func (p *printer) VisitNumberLiteral(e *NumberLiteral) error {
	p.sb.WriteString(formatNumber(e.Val))
	return nil
}

// VisitStringLiteral implements Visitor.
func (p *printer) VisitStringLiteral(e *StringLiteral) error {
	p.sb.WriteString(quoteString(e.Quote, e.Val))
	return nil
}

// VisitVectorSelector implements Visitor.
func (p *printer) VisitVectorSelector(e *VectorSelector) error {
	p.sb.WriteString(e.Name)
	if len(e.Matchers) > 0 {
		p.sb.WriteByte('{')
		for i, m := range e.Matchers {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printMatcher(m)
		}
		p.sb.WriteByte('}')
	} else if e.Name == "" {
		p.sb.WriteString("{}")
	}
	return nil
}

// VisitMatrixSelector implements Visitor.
func (p *printer) VisitMatrixSelector(e *MatrixSelector) error {
	_ = p.VisitVectorSelector(e.Vector)
	p.sb.WriteByte('[')
	p.sb.WriteString(FormatDuration(e.Range))
	p.sb.WriteByte(']')
	return nil
}

// VisitSubqueryExpr implements Visitor.
func (p *printer) VisitSubqueryExpr(e *SubqueryExpr) error {
	if err := Visit(p, e.Expr); err != nil {
		return err
	}
	p.sb.WriteByte('[')
	p.sb.WriteString(FormatDuration(e.Range))
	p.sb.WriteByte(':')
	if e.Step != 0 {
		p.sb.WriteString(FormatDuration(e.Step))
	}
	p.sb.WriteByte(']')
	return nil
}

// VisitOffsetExpr implements Visitor.
func (p *printer) VisitOffsetExpr(e *OffsetExpr) error {
	if err := Visit(p, e.Expr); err != nil {
		return err
	}
	p.sb.WriteString(" offset ")
	p.sb.WriteString(FormatDuration(e.Offset))
	return nil
}

// VisitParenExpr implements Visitor.
func (p *printer) VisitParenExpr(e *ParenExpr) error {
	p.sb.WriteByte('(')
	if err := Visit(p, e.Expr); err != nil {
		return err
	}
	p.sb.WriteByte(')')
	return nil
}

// VisitUnaryExpr implements Visitor.
func (p *printer) VisitUnaryExpr(e *UnaryExpr) error {
	p.sb.WriteString(e.Op.String())
	return Visit(p, e.Expr)
}

// VisitCall implements Visitor.
func (p *printer) VisitCall(e *Call) error {
	p.sb.WriteString(e.Func.Name)
	p.sb.WriteByte('(')
	for i, arg := range e.Args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		if err := Visit(p, arg); err != nil {
			return err
		}
	}
	p.sb.WriteByte(')')
	return nil
}

// VisitAggregateExpr implements Visitor.
func (p *printer) VisitAggregateExpr(e *AggregateExpr) error {
	p.sb.WriteString(e.Op.Name)
	if len(e.Grouping) > 0 || e.Without {
		kw := " by ("
		if e.Without {
			kw = " without ("
		}
		p.sb.WriteString(kw)
		p.sb.WriteString(strings.Join(e.Grouping, ", "))
		p.sb.WriteString(") (")
	} else {
		p.sb.WriteByte('(')
	}
	if e.Param != nil {
		if err := Visit(p, e.Param); err != nil {
			return err
		}
		p.sb.WriteString(", ")
	}
	if err := Visit(p, e.Expr); err != nil {
		return err
	}
	p.sb.WriteByte(')')
	return nil
}

// VisitBinaryExpr implements Visitor.
func (p *printer) VisitBinaryExpr(e *BinaryExpr) error {
	if err := Visit(p, e.LHS); err != nil {
		return err
	}
	p.sb.WriteByte(' ')
	p.sb.WriteString(e.Op.String())
	if s := e.Matching.String(); s != "" {
		p.sb.WriteByte(' ')
		p.sb.WriteString(s)
	}
	p.sb.WriteByte(' ')
	return Visit(p, e.RHS)
}

func (p *printer) printMatcher(m *LabelMatcher) {
	p.sb.WriteString(m.Name)
	p.sb.WriteString(m.Op.String())
	p.sb.WriteString(quoteString(m.Value.Quote, m.Value.Val))
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, +1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	default:
		// Shortest representation that round-trips.
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

func quoteString(quote byte, s string) string {
	if quote == '`' {
		return "`" + s + "`"
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '\'', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
