package promql

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-faster/errors"

	"github.com/go-faster/promql/internal/lexerql"
	"github.com/go-faster/promql/lexer"
)

// ParseOptions is a Parse options structure.
type ParseOptions struct {
	// Filename sets filename for source positions.
	Filename string
	// ParseDuration overrides the duration syntax recognized by the
	// lexer and the parser, e.g. to accept template placeholders.
	// Pick it before the first parse and do not change it afterwards;
	// PromQL syntax is the default.
	ParseDuration lexerql.DurationParser
}

// Parse parses given PromQL expression.
func Parse(s string) (Expr, error) {
	return ParseWithOptions(s, ParseOptions{})
}

// ParseWithOptions parses given PromQL expression with options.
func ParseWithOptions(s string, opts ParseOptions) (Expr, error) {
	tokens, err := lexer.Tokenize(s, lexer.TokenizeOptions{
		Filename:      opts.Filename,
		ParseDuration: opts.ParseDuration,
	})
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &ParseError{Pos: lexErr.Pos, Msg: lexErr.Msg}
		}
		return nil, errors.Wrap(err, "tokenize")
	}

	// Comments are lexed as tokens so tools can see them; the grammar
	// does not.
	n := 0
	for _, t := range tokens {
		if t.Type != lexer.Comment {
			tokens[n] = t
			n++
		}
	}

	p := parser{
		tokens: tokens[:n],
		opts:   opts,
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != lexer.EOF {
		return nil, p.unexpectedToken(t, "end of input")
	}
	return expr, nil
}

type parser struct {
	tokens []lexer.Token
	pos    int
	opts   ParseOptions
}

func (p *parser) next() lexer.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) lexer.Token {
	if len(p.tokens) <= p.pos+n {
		return p.eofToken()
	}
	return p.tokens[p.pos+n]
}

// eofToken is a synthetic token placed right after the last real one,
// so EOF errors still carry a usable position.
func (p *parser) eofToken() lexer.Token {
	t := lexer.Token{Type: lexer.EOF}
	if len(p.tokens) == 0 {
		t.Pos.Line, t.Pos.Column = 1, 1
		return t
	}
	last := p.tokens[len(p.tokens)-1]
	t.Pos = last.Pos
	t.Pos.Column += last.End - last.Pos.Offset
	t.Pos.Offset = last.End
	t.End = last.End
	return t
}

func (p *parser) consume(tt lexer.TokenType) (lexer.Token, error) {
	t := p.next()
	if t.Type != tt {
		return t, p.unexpectedToken(t, describeToken(tt))
	}
	return t, nil
}

func (p *parser) tokenSpan(t lexer.Token) Span {
	return Span{Pos: t.Pos, End: t.End}
}

func (p *parser) unexpectedToken(t lexer.Token, expected string) error {
	return &ParseError{
		Pos:        t.Pos,
		Unexpected: describeActual(t),
		Expected:   expected,
	}
}

func describeActual(t lexer.Token) string {
	switch t.Type {
	case lexer.EOF, lexer.Invalid:
		return t.Type.String()
	case lexer.Ident, lexer.MetricIdent, lexer.AggregateOp,
		lexer.Number, lexer.Duration, lexer.String:
		return fmt.Sprintf("%s %q", t.Type, t.Text)
	default:
		return fmt.Sprintf("%q", t.Type.String())
	}
}

func describeToken(tt lexer.TokenType) string {
	switch tt {
	case lexer.EOF, lexer.Ident, lexer.MetricIdent, lexer.AggregateOp,
		lexer.Number, lexer.Duration, lexer.String:
		return tt.String()
	default:
		return fmt.Sprintf("%q", tt.String())
	}
}

func (p *parser) parseNumberLiteral() (*NumberLiteral, error) {
	t, err := p.consume(lexer.Number)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return nil, &ParseError{
			Pos: t.Pos,
			Msg: fmt.Sprintf("invalid number %q", t.Text),
		}
	}
	return &NumberLiteral{Val: v, At: p.tokenSpan(t)}, nil
}

func (p *parser) parseStringLiteral() (*StringLiteral, error) {
	t, err := p.consume(lexer.String)
	if err != nil {
		return nil, err
	}
	val, err := lexerql.Unquote(t.Text)
	if err != nil {
		return nil, &ParseError{Pos: t.Pos, Msg: err.Error()}
	}
	return &StringLiteral{
		Quote: t.Text[0],
		Val:   val,
		At:    p.tokenSpan(t),
	}, nil
}

// parseDurationToken consumes a duration token and returns its value
// and end offset.
func (p *parser) parseDurationToken() (time.Duration, int, error) {
	t, err := p.consume(lexer.Duration)
	if err != nil {
		return 0, 0, err
	}
	parse := p.opts.ParseDuration
	if parse == nil {
		parse = lexerql.ParseDuration
	}
	d, err := parse(t.Text)
	if err != nil {
		return 0, 0, &ParseError{Pos: t.Pos, Msg: err.Error()}
	}
	return d, t.End, nil
}
