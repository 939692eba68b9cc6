package promql

import (
	"time"

	"github.com/go-faster/promql/lexer"
)

// binaryTail is one (op, matching, rhs) step of a flat binary
// expression sequence before precedence is resolved.
type binaryTail struct {
	op       BinOp
	matching *VectorMatching
	rhs      Expr
}

func (p *parser) parseExpr() (Expr, error) {
	head, err := p.parseExprNoBinary()
	if err != nil {
		return nil, err
	}

	var tail []binaryTail
	for {
		op, ok := binOpToken(p.peek().Type)
		if !ok {
			break
		}
		p.next()

		matching, err := p.parseVectorMatching(op)
		if err != nil {
			return nil, err
		}
		rhs, err := p.parseExprNoBinary()
		if err != nil {
			return nil, err
		}
		tail = append(tail, binaryTail{op: op, matching: matching, rhs: rhs})
	}
	if len(tail) == 0 {
		return head, nil
	}
	return foldBinary(head, tail), nil
}

func binOpToken(tt lexer.TokenType) (BinOp, bool) {
	switch tt {
	case lexer.Or:
		return OpOr, true
	case lexer.And:
		return OpAnd, true
	case lexer.Unless:
		return OpUnless, true
	case lexer.Atan2:
		return OpAtan2, true
	case lexer.Add:
		return OpAdd, true
	case lexer.Sub:
		return OpSub, true
	case lexer.Mul:
		return OpMul, true
	case lexer.Div:
		return OpDiv, true
	case lexer.Mod:
		return OpMod, true
	case lexer.Pow:
		return OpPow, true
	case lexer.CmpEq:
		return OpEq, true
	case lexer.NotEq:
		return OpNotEq, true
	case lexer.Gt:
		return OpGt, true
	case lexer.Gte:
		return OpGte, true
	case lexer.Lt:
		return OpLt, true
	case lexer.Lte:
		return OpLte, true
	default:
		return 0, false
	}
}

// foldBinary resolves precedence over a flat operator sequence.
//
// Tiers fold from highest to lowest; within a tier a left-to-right
// scan merges adjacent operands, so equal precedence associates left.
// The span of a folded node covers both operands.
func foldBinary(head Expr, tail []binaryTail) Expr {
	operands := make([]Expr, 0, len(tail)+1)
	operands = append(operands, head)
	for _, t := range tail {
		operands = append(operands, t.rhs)
	}
	ops := make([]binaryTail, len(tail))
	copy(ops, tail)

	for prec := 6; prec >= 1; prec-- {
		for i := 0; i < len(ops); {
			if ops[i].op.Precedence() != prec {
				i++
				continue
			}
			lhs, rhs := operands[i], operands[i+1]
			operands[i] = &BinaryExpr{
				Op:       ops[i].op,
				LHS:      lhs,
				RHS:      rhs,
				Matching: ops[i].matching,
				At:       Span{Pos: lhs.Span().Pos, End: rhs.Span().End},
			}
			operands = append(operands[:i+1], operands[i+2:]...)
			ops = append(ops[:i], ops[i+1:]...)
		}
	}
	return operands[0]
}

// parseVectorMatching parses the optional bool/on/ignoring/group
// modifier after a binary operator. Returns nil when absent.
func (p *parser) parseVectorMatching(op BinOp) (*VectorMatching, error) {
	m := new(VectorMatching)
	seen := false

	if p.peek().Type == lexer.Bool {
		t := p.next()
		if !op.IsComparison() {
			return nil, &ParseError{
				Pos: t.Pos,
				Msg: "bool modifier can only be used on comparison operators",
			}
		}
		m.ReturnBool = true
		seen = true
	}

	switch p.peek().Type {
	case lexer.On, lexer.Ignoring:
		t := p.next()
		m.On = t.Type == lexer.On
		seen = true

		labels, _, err := p.parseLabelList()
		if err != nil {
			return nil, err
		}
		m.MatchingLabels = labels

		switch p.peek().Type {
		case lexer.GroupLeft, lexer.GroupRight:
			g := p.next()
			if g.Type == lexer.GroupLeft {
				m.Card = CardManyToOne
			} else {
				m.Card = CardOneToMany
			}
			// A parenthesis right after the group modifier is the
			// include list, never an operand.
			if p.peek().Type == lexer.OpenParen {
				include, _, err := p.parseLabelList()
				if err != nil {
					return nil, err
				}
				m.Include = include
			}
		}
	}

	if !seen {
		return nil, nil
	}
	return m, nil
}

func (p *parser) parseExprNoBinary() (Expr, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	return p.parseSuffix(expr)
}

func (p *parser) parsePrimaryExpr() (Expr, error) {
	switch t := p.peek(); t.Type {
	case lexer.OpenParen:
		open := p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing, err := p.consume(lexer.CloseParen)
		if err != nil {
			return nil, err
		}
		return &ParenExpr{
			Expr: inner,
			At:   Span{Pos: open.Pos, End: closing.End},
		}, nil
	case lexer.Add, lexer.Sub:
		opTok := p.next()
		op := OpAdd
		if opTok.Type == lexer.Sub {
			op = OpSub
		}
		inner, err := p.parseExprNoBinary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Op:   op,
			Expr: inner,
			At:   Span{Pos: opTok.Pos, End: inner.Span().End},
		}, nil
	case lexer.Number:
		return p.parseNumberLiteral()
	case lexer.String:
		return p.parseStringLiteral()
	case lexer.AggregateOp:
		return p.parseAggregateExpr()
	case lexer.Ident:
		if p.peekAt(1).Type == lexer.OpenParen {
			return p.parseCall()
		}
		return p.parseVectorSelector()
	case lexer.MetricIdent, lexer.OpenBrace:
		return p.parseVectorSelector()
	default:
		return nil, p.unexpectedToken(t, "expression")
	}
}

// parseSuffix attaches offset, range and subquery suffixes.
func (p *parser) parseSuffix(expr Expr) (Expr, error) {
	for {
		switch p.peek().Type {
		case lexer.Offset:
			off := p.next()
			switch expr.(type) {
			case *VectorSelector, *MatrixSelector, *SubqueryExpr:
			default:
				return nil, &ParseError{
					Pos: off.Pos,
					Msg: "offset modifier must be preceded by an instant vector selector or range vector selector or a subquery",
				}
			}

			neg := false
			if p.peek().Type == lexer.Sub {
				p.next()
				neg = true
			}
			d, end, err := p.parseDurationToken()
			if err != nil {
				return nil, err
			}
			if neg {
				d = -d
			}
			expr = &OffsetExpr{
				Expr:   expr,
				Offset: d,
				At:     Span{Pos: expr.Span().Pos, End: end},
			}
		case lexer.OpenBracket:
			p.next()
			rng, _, err := p.parseDurationToken()
			if err != nil {
				return nil, err
			}

			switch t := p.next(); t.Type {
			case lexer.Colon:
				var step time.Duration
				if p.peek().Type != lexer.CloseBracket {
					step, _, err = p.parseDurationToken()
					if err != nil {
						return nil, err
					}
				}
				closing, err := p.consume(lexer.CloseBracket)
				if err != nil {
					return nil, err
				}
				expr = &SubqueryExpr{
					Expr:  expr,
					Range: rng,
					Step:  step,
					At:    Span{Pos: expr.Span().Pos, End: closing.End},
				}
			case lexer.CloseBracket:
				vs, ok := expr.(*VectorSelector)
				if !ok {
					return nil, &ParseError{
						Pos: t.Pos,
						Msg: "ranges only allowed for vector selectors",
					}
				}
				expr = &MatrixSelector{
					Vector: vs,
					Range:  rng,
					At:     Span{Pos: vs.At.Pos, End: t.End},
				}
			default:
				return nil, p.unexpectedToken(t, `":" or "]"`)
			}
		default:
			return expr, nil
		}
	}
}
