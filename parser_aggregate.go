package promql

import (
	"fmt"

	"github.com/prometheus/common/model"

	"github.com/go-faster/promql/lexer"
)

func (p *parser) parseAggregateExpr() (Expr, error) {
	opTok, err := p.consume(lexer.AggregateOp)
	if err != nil {
		return nil, err
	}
	op, ok := LookupAggregateOp(opTok.Text)
	if !ok {
		// The lexer only classifies catalogued names.
		return nil, p.unexpectedToken(opTok, "aggregation operator")
	}
	e := &AggregateExpr{
		Op: op,
		At: p.tokenSpan(opTok),
	}

	// The grouping modifier may come before or after the arguments.
	grouped := false
	switch p.peek().Type {
	case lexer.By, lexer.Without:
		if err := p.parseGrouping(e); err != nil {
			return nil, err
		}
		grouped = true
	}

	args, end, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	e.At.End = end

	if !grouped {
		switch p.peek().Type {
		case lexer.By, lexer.Without:
			if err := p.parseGrouping(e); err != nil {
				return nil, err
			}
		}
	}

	want := 1
	if op.ParamType != ValueTypeNone {
		want = 2
	}
	if len(args) != want {
		return nil, &ParseError{
			Pos: opTok.Pos,
			Msg: fmt.Sprintf("wrong number of arguments for aggregate expression provided, expected %d, got %d",
				want, len(args)),
		}
	}
	if want == 2 {
		e.Param = args[0]
		e.Expr = args[1]
	} else {
		e.Expr = args[0]
	}
	return e, nil
}

func (p *parser) parseGrouping(e *AggregateExpr) error {
	switch t := p.next(); t.Type {
	case lexer.By:
	case lexer.Without:
		e.Without = true
	default:
		return p.unexpectedToken(t, `"by" or "without"`)
	}

	labels, end, err := p.parseLabelList()
	if err != nil {
		return err
	}
	e.Grouping = labels
	if end > e.At.End {
		e.At.End = end
	}
	return nil
}

func (p *parser) parseCall() (Expr, error) {
	nameTok, err := p.consume(lexer.Ident)
	if err != nil {
		return nil, err
	}
	fn, ok := LookupFunction(nameTok.Text)
	if !ok {
		return nil, &ParseError{
			Pos: nameTok.Pos,
			Msg: fmt.Sprintf("unknown function with name %q", nameTok.Text),
		}
	}

	args, end, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}

	if fn.Variadic == 0 {
		if len(args) != len(fn.ArgTypes) {
			return nil, &ParseError{
				Pos: nameTok.Pos,
				Msg: fmt.Sprintf("Incorrect number of argument(s) in call to %q, expected %d argument(s)",
					fn.Name, len(fn.ArgTypes)),
			}
		}
	} else if len(args) < fn.MinArgs() {
		return nil, &ParseError{
			Pos: nameTok.Pos,
			Msg: fmt.Sprintf("Incorrect number of argument(s) in call to %q, expected at least %d argument(s)",
				fn.Name, fn.MinArgs()),
		}
	}

	return &Call{
		Func: fn,
		Args: args,
		At:   Span{Pos: nameTok.Pos, End: end},
	}, nil
}

// parseCallArgs parses a possibly empty parenthesized list of
// comma-separated expressions.
func (p *parser) parseCallArgs() (args []Expr, end int, _ error) {
	if _, err := p.consume(lexer.OpenParen); err != nil {
		return nil, 0, err
	}

	if p.peek().Type == lexer.CloseParen {
		closing := p.next()
		return nil, closing.End, nil
	}

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, 0, err
		}
		args = append(args, arg)

		switch t := p.next(); t.Type {
		case lexer.CloseParen:
			return args, t.End, nil
		case lexer.Comma:
		default:
			return nil, 0, p.unexpectedToken(t, `"," or ")"`)
		}
	}
}

// parseLabelList parses a possibly empty parenthesized list of
// comma-separated label names.
func (p *parser) parseLabelList() (labels []string, end int, _ error) {
	if _, err := p.consume(lexer.OpenParen); err != nil {
		return nil, 0, err
	}

	if p.peek().Type == lexer.CloseParen {
		closing := p.next()
		return nil, closing.End, nil
	}

	for {
		label, err := p.parseLabelName()
		if err != nil {
			return nil, 0, err
		}
		labels = append(labels, label)

		switch t := p.next(); t.Type {
		case lexer.CloseParen:
			return labels, t.End, nil
		case lexer.Comma:
		default:
			return nil, 0, p.unexpectedToken(t, `"," or ")"`)
		}
	}
}

// parseLabelName consumes a label name, also accepting keywords and
// aggregation operator names in this position.
func (p *parser) parseLabelName() (string, error) {
	t := p.next()
	switch {
	case t.Type == lexer.Ident, t.Type == lexer.AggregateOp, t.Type.IsKeyword():
	default:
		return "", p.unexpectedToken(t, "label name")
	}
	if !model.LabelName(t.Text).IsValidLegacy() {
		return "", &ParseError{
			Pos: t.Pos,
			Msg: fmt.Sprintf("invalid label name %q", t.Text),
		}
	}
	return t.Text, nil
}
