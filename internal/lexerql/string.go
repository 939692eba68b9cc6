package lexerql

import (
	"strings"
	"text/scanner"

	"github.com/go-faster/errors"
)

// ScanString scans a string literal and returns it with quotes kept.
//
// The opening quote is expected to be consumed already and is passed as
// quote. Backtick strings take any rune except a backtick, span
// newlines and have no escapes. Single and double quoted strings allow
// escapes \a \b \f \n \r \t \v \\ and an escaped quote of either kind;
// a literal newline terminates the scan with an error.
func ScanString(s *scanner.Scanner, quote rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(quote)

	if quote == '`' {
		for {
			switch ch := s.Next(); ch {
			case scanner.EOF:
				return "", errors.New("unterminated raw string")
			case '`':
				sb.WriteRune(ch)
				return sb.String(), nil
			default:
				sb.WriteRune(ch)
			}
		}
	}

	for {
		switch ch := s.Next(); ch {
		case scanner.EOF:
			return "", errors.New("unterminated string")
		case '\n':
			return "", errors.New("unexpected newline in string")
		case '\\':
			switch esc := s.Next(); esc {
			case 'a', 'b', 'f', 'n', 'r', 't', 'v', '\\', '\'', '"':
				sb.WriteRune(ch)
				sb.WriteRune(esc)
			case scanner.EOF:
				return "", errors.New("unterminated string")
			default:
				return "", errors.Errorf("invalid escape sequence %q", `\`+string(esc))
			}
		case quote:
			sb.WriteRune(ch)
			return sb.String(), nil
		default:
			sb.WriteRune(ch)
		}
	}
}

// Unquote strips quotes from a string literal scanned by [ScanString]
// and resolves escape sequences.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != raw[len(raw)-1] {
		return "", errors.Errorf("invalid string literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	if raw[0] == '`' || !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errors.Errorf("invalid string literal %q", raw)
		}
		switch e := body[i]; e {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '\\', '\'', '"':
			sb.WriteByte(e)
		default:
			return "", errors.Errorf("invalid escape sequence %q", `\`+string(e))
		}
	}
	return sb.String(), nil
}
