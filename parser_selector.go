package promql

import (
	"fmt"

	"github.com/prometheus/common/model"

	"github.com/go-faster/promql/lexer"
)

func (p *parser) parseVectorSelector() (Expr, error) {
	v := new(VectorSelector)
	switch t := p.peek(); t.Type {
	case lexer.Ident, lexer.MetricIdent:
		p.next()
		v.Name = t.Text
		v.At = p.tokenSpan(t)
	}

	if p.peek().Type == lexer.OpenBrace {
		matchers, sp, err := p.parseLabelMatchers()
		if err != nil {
			return nil, err
		}
		v.Matchers = matchers
		if v.Name == "" {
			v.At = sp
		} else {
			v.At.End = sp.End
		}
	}
	return v, nil
}

// parseLabelMatchers parses a braced matcher list, trailing comma
// allowed.
func (p *parser) parseLabelMatchers() (matchers []*LabelMatcher, sp Span, _ error) {
	open, err := p.consume(lexer.OpenBrace)
	if err != nil {
		return nil, sp, err
	}
	sp = p.tokenSpan(open)

	// Empty matcher list.
	if p.peek().Type == lexer.CloseBrace {
		closing := p.next()
		sp.End = closing.End
		return nil, sp, nil
	}

	for {
		m, err := p.parseLabelMatcher()
		if err != nil {
			return nil, sp, err
		}
		matchers = append(matchers, m)

		switch t := p.next(); t.Type {
		case lexer.CloseBrace:
			sp.End = t.End
			return matchers, sp, nil
		case lexer.Comma:
			if p.peek().Type == lexer.CloseBrace {
				closing := p.next()
				sp.End = closing.End
				return matchers, sp, nil
			}
		default:
			return nil, sp, p.unexpectedToken(t, `"," or "}"`)
		}
	}
}

func (p *parser) parseLabelMatcher() (*LabelMatcher, error) {
	// Keywords were already lexed as plain identifiers inside braces.
	name, err := p.consume(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if !model.LabelName(name.Text).IsValidLegacy() {
		return nil, &ParseError{
			Pos: name.Pos,
			Msg: fmt.Sprintf("invalid label name %q", name.Text),
		}
	}
	m := &LabelMatcher{
		Name: name.Text,
		At:   p.tokenSpan(name),
	}

	switch t := p.next(); t.Type {
	case lexer.Eq:
		m.Op = MatchEqual
	case lexer.NotEq:
		m.Op = MatchNotEqual
	case lexer.Re:
		m.Op = MatchRegexp
	case lexer.NotRe:
		m.Op = MatchNotRegexp
	default:
		return nil, p.unexpectedToken(t, "label matching operator")
	}

	value, err := p.parseStringLiteral()
	if err != nil {
		return nil, err
	}
	m.Value = value
	m.At.End = value.At.End
	return m, nil
}
