package lexer

import (
	"fmt"
	"testing"
	"text/scanner"

	"github.com/stretchr/testify/require"
)

type TestCase struct {
	input   string
	want    []Token
	wantErr bool
}

var tests = []TestCase{
	{
		`3h`,
		[]Token{
			{Type: Duration, Text: "3h"},
		},
		false,
	},
	{
		`1y2w3d4h5m6s7ms`,
		[]Token{
			{Type: Duration, Text: "1y2w3d4h5m6s7ms"},
		},
		false,
	},
	{
		`10`,
		[]Token{
			{Type: Number, Text: "10"},
		},
		false,
	},
	{
		`1.5e3`,
		[]Token{
			{Type: Number, Text: "1.5e3"},
		},
		false,
	},
	{
		`.5`,
		[]Token{
			{Type: Number, Text: ".5"},
		},
		false,
	},
	{
		`Inf iNf NaN`,
		[]Token{
			{Type: Number, Text: "Inf"},
			{Type: Number, Text: "iNf"},
			{Type: Number, Text: "NaN"},
		},
		false,
	},
	{
		`{}`,
		[]Token{
			{Type: OpenBrace, Text: "{"},
			{Type: CloseBrace, Text: "}"},
		},
		false,
	},
	{
		`{foo =~ "bar"}`,
		[]Token{
			{Type: OpenBrace, Text: "{"},
			{Type: Ident, Text: "foo"},
			{Type: Re, Text: "=~"},
			{Type: String, Text: `"bar"`},
			{Type: CloseBrace, Text: "}"},
		},
		false,
	},
	{
		// Keywords and aggregation names are plain identifiers inside
		// braces.
		`{on='a',sum!~'b',offset="c"}`,
		[]Token{
			{Type: OpenBrace, Text: "{"},
			{Type: Ident, Text: "on"},
			{Type: Eq, Text: "="},
			{Type: String, Text: `'a'`},
			{Type: Comma, Text: ","},
			{Type: Ident, Text: "sum"},
			{Type: NotRe, Text: "!~"},
			{Type: String, Text: `'b'`},
			{Type: Comma, Text: ","},
			{Type: Ident, Text: "offset"},
			{Type: Eq, Text: "="},
			{Type: String, Text: `"c"`},
			{Type: CloseBrace, Text: "}"},
		},
		false,
	},
	{
		"`raw\nstring`",
		[]Token{
			{Type: String, Text: "`raw\nstring`"},
		},
		false,
	},
	{
		`job:http_errors:rate5m`,
		[]Token{
			{Type: MetricIdent, Text: "job:http_errors:rate5m"},
		},
		false,
	},
	{
		`sum by (job) (rate(http_requests_total[5m]))`,
		[]Token{
			{Type: AggregateOp, Text: "sum"},
			{Type: By, Text: "by"},
			{Type: OpenParen, Text: "("},
			{Type: Ident, Text: "job"},
			{Type: CloseParen, Text: ")"},
			{Type: OpenParen, Text: "("},
			{Type: Ident, Text: "rate"},
			{Type: OpenParen, Text: "("},
			{Type: Ident, Text: "http_requests_total"},
			{Type: OpenBracket, Text: "["},
			{Type: Duration, Text: "5m"},
			{Type: CloseBracket, Text: "]"},
			{Type: CloseParen, Text: ")"},
			{Type: CloseParen, Text: ")"},
		},
		false,
	},
	{
		`foo[1h:5m]`,
		[]Token{
			{Type: Ident, Text: "foo"},
			{Type: OpenBracket, Text: "["},
			{Type: Duration, Text: "1h"},
			{Type: Colon, Text: ":"},
			{Type: Duration, Text: "5m"},
			{Type: CloseBracket, Text: "]"},
		},
		false,
	},
	{
		`foo offset -5m`,
		[]Token{
			{Type: Ident, Text: "foo"},
			{Type: Offset, Text: "offset"},
			{Type: Sub, Text: "-"},
			{Type: Duration, Text: "5m"},
		},
		false,
	},
	{
		`a == b != c <= d >= e < f > g`,
		[]Token{
			{Type: Ident, Text: "a"},
			{Type: CmpEq, Text: "=="},
			{Type: Ident, Text: "b"},
			{Type: NotEq, Text: "!="},
			{Type: Ident, Text: "c"},
			{Type: Lte, Text: "<="},
			{Type: Ident, Text: "d"},
			{Type: Gte, Text: ">="},
			{Type: Ident, Text: "e"},
			{Type: Lt, Text: "<"},
			{Type: Ident, Text: "f"},
			{Type: Gt, Text: ">"},
			{Type: Ident, Text: "g"},
		},
		false,
	},
	{
		`a AND b UNLESS c atan2 d`,
		[]Token{
			{Type: Ident, Text: "a"},
			{Type: And, Text: "AND"},
			{Type: Ident, Text: "b"},
			{Type: Unless, Text: "UNLESS"},
			{Type: Ident, Text: "c"},
			{Type: Atan2, Text: "atan2"},
			{Type: Ident, Text: "d"},
		},
		false,
	},
	{
		"foo # trailing comment",
		[]Token{
			{Type: Ident, Text: "foo"},
			{Type: Comment, Text: " trailing comment"},
		},
		false,
	},
	{
		"# leading comment\nfoo",
		[]Token{
			{Type: Comment, Text: " leading comment"},
			{Type: Ident, Text: "foo"},
		},
		false,
	},
	{
		`"escaped \" and \n"`,
		[]Token{
			{Type: String, Text: `"escaped \" and \n"`},
		},
		false,
	},

	// Errors.
	{`{{`, nil, true},
	{`}`, nil, true},
	{`{foo="bar"`, nil, true},
	{`a[5m`, nil, true},
	{`a]`, nil, true},
	{`a[1m[2m]]`, nil, true},
	{`(a`, nil, true},
	{`a)`, nil, true},
	{`a : b`, nil, true},
	{`!a`, nil, true},
	{`"unterminated`, nil, true},
	{"\"line\nbreak\"", nil, true},
	{`"bad \x escape"`, nil, true},
	{`5mm`, nil, true},
	{`1m1h`, nil, true},
}

func TestTokenize(t *testing.T) {
	for i, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			got, err := Tokenize(tt.input, TokenizeOptions{})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			for i := range got {
				// Zero position before checking.
				got[i].Pos = scanner.Position{}
				got[i].End = 0
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	got, err := Tokenize("foo{bar=\"baz\"}", TokenizeOptions{})
	require.NoError(t, err)
	require.Len(t, got, 6)

	foo := got[0]
	require.Equal(t, 0, foo.Pos.Offset)
	require.Equal(t, 1, foo.Pos.Line)
	require.Equal(t, 1, foo.Pos.Column)
	require.Equal(t, 3, foo.End)

	str := got[4]
	require.Equal(t, String, str.Type)
	require.Equal(t, 8, str.Pos.Offset)
	require.Equal(t, 13, str.End)
}

func FuzzTokenize(f *testing.F) {
	for _, tt := range tests {
		f.Add(tt.input)
	}
	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil || t.Failed() {
				t.Logf("Input:\n%s", input)
			}
		}()
		_, _ = Tokenize(input, TokenizeOptions{})
	})
}
