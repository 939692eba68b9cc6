package lexerql

import (
	"strings"
	"text/scanner"
)

// ScanComment reads runes until newline or EOF and returns the comment body.
//
// The leading '#' is expected to be consumed already.
func ScanComment(s *scanner.Scanner) string {
	var sb strings.Builder
	for {
		ch := s.Peek()
		if ch == scanner.EOF || ch == '\n' {
			break
		}
		sb.WriteRune(ch)
		s.Next()
	}
	return sb.String()
}
