// Package lexer contains PromQL lexer.
package lexer

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/go-faster/promql/internal/lexerql"
)

type lexer struct {
	scanner scanner.Scanner
	opts    TokenizeOptions
	tokens  []Token
	err     error

	// Nested braces and brackets are forbidden, so a bool per kind is
	// enough state.
	braceOpen   bool
	bracketOpen bool
	parenDepth  int
}

// TokenizeOptions is a Tokenize options structure.
type TokenizeOptions struct {
	// Filename sets filename for the scanner.
	Filename string
	// ParseDuration overrides the duration syntax recognized by the
	// lexer. Defaults to [lexerql.ParseDuration].
	ParseDuration lexerql.DurationParser
}

// Tokenize scans given string to PromQL tokens.
func Tokenize(s string, opts TokenizeOptions) ([]Token, error) {
	l := lexer{opts: opts}
	l.scanner.Init(strings.NewReader(s))
	l.scanner.Filename = opts.Filename
	// Strings are scanned by hand: PromQL escapes differ from Go's.
	l.scanner.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	l.scanner.IsIdentRune = func(ch rune, i int) bool {
		return lexerql.IsIdentStartRune(ch) ||
			(i > 0 && lexerql.IsMetricIdentRune(ch))
	}
	l.scanner.Error = func(s *scanner.Scanner, msg string) {
		l.setError(msg, l.scanner.Position)
	}

	for {
		r := l.scanner.Scan()
		if l.err != nil {
			return l.tokens, l.err
		}
		if r == scanner.EOF {
			break
		}
		tok, ok := l.nextToken(r, l.scanner.TokenText())
		if !ok {
			return l.tokens, l.err
		}
		tok.End = l.scanner.Pos().Offset
		l.tokens = append(l.tokens, tok)
	}

	if l.err == nil {
		pos := l.scanner.Pos()
		switch {
		case l.braceOpen:
			l.setError("unexpected end of input inside braces", pos)
		case l.bracketOpen:
			l.setError("unexpected end of input inside brackets", pos)
		case l.parenDepth > 0:
			l.setError("unclosed left parenthesis", pos)
		}
	}
	return l.tokens, l.err
}

func (l *lexer) setError(msg string, pos scanner.Position) {
	if l.err == nil {
		l.err = &Error{
			Msg: msg,
			Pos: pos,
		}
	}
}

func (l *lexer) nextToken(r rune, text string) (tok Token, _ bool) {
	tok.Pos = l.scanner.Position
	tok.Text = text
	switch r {
	case '#':
		tok.Type = Comment
		tok.Text = lexerql.ScanComment(&l.scanner)
		return tok, true
	case scanner.Int, scanner.Float:
		if lexerql.IsDurationRune(l.scanner.Peek()) {
			duration, err := lexerql.ScanDuration(&l.scanner, text, l.opts.ParseDuration)
			if err != nil {
				l.setError(err.Error(), tok.Pos)
				return tok, false
			}
			tok.Type = Duration
			tok.Text = duration
			return tok, true
		}
		tok.Type = Number
		return tok, true
	case scanner.Ident:
		tok.Type = l.identType(text)
		return tok, true
	case '"', '\'', '`':
		raw, err := lexerql.ScanString(&l.scanner, r)
		if err != nil {
			l.setError(err.Error(), tok.Pos)
			return tok, false
		}
		tok.Type = String
		tok.Text = raw
		return tok, true
	case '{':
		if l.braceOpen {
			l.setError("unexpected left brace", tok.Pos)
			return tok, false
		}
		l.braceOpen = true
		tok.Type = OpenBrace
		return tok, true
	case '}':
		if !l.braceOpen {
			l.setError("unexpected right brace", tok.Pos)
			return tok, false
		}
		l.braceOpen = false
		tok.Type = CloseBrace
		return tok, true
	case '[':
		if l.bracketOpen {
			l.setError("unexpected left bracket", tok.Pos)
			return tok, false
		}
		l.bracketOpen = true
		tok.Type = OpenBracket
		return tok, true
	case ']':
		if !l.bracketOpen {
			l.setError("unexpected right bracket", tok.Pos)
			return tok, false
		}
		l.bracketOpen = false
		tok.Type = CloseBracket
		return tok, true
	case '(':
		l.parenDepth++
		tok.Type = OpenParen
		return tok, true
	case ')':
		if l.parenDepth == 0 {
			l.setError("unexpected right parenthesis", tok.Pos)
			return tok, false
		}
		l.parenDepth--
		tok.Type = CloseParen
		return tok, true
	case ':':
		// A colon is only valid inside a metric identifier or as the
		// subquery separator.
		if !l.bracketOpen {
			l.setError("unexpected colon", tok.Pos)
			return tok, false
		}
		tok.Type = Colon
		return tok, true
	}

	peeked := text + string(l.scanner.Peek())
	if tt, ok := tokens[peeked]; ok {
		l.scanner.Next()
		tok.Type = tt
		tok.Text = peeked
		return tok, true
	}
	if tt, ok := tokens[text]; ok {
		tok.Type = tt
		return tok, true
	}

	if r == '!' {
		l.setError(fmt.Sprintf("unexpected character after '!': %q", l.scanner.Peek()), tok.Pos)
		return tok, false
	}
	l.setError(fmt.Sprintf("unexpected character: %q", r), tok.Pos)
	return tok, false
}

func (l *lexer) identType(text string) TokenType {
	// Inside braces every identifier is a label name, keywords
	// included.
	if l.braceOpen {
		return Ident
	}
	if strings.Contains(text, ":") {
		return MetricIdent
	}
	lower := strings.ToLower(text)
	if tt, ok := keywords[lower]; ok {
		return tt
	}
	if _, ok := aggregates[lower]; ok {
		return AggregateOp
	}
	switch lower {
	case "inf", "nan":
		return Number
	}
	return Ident
}
