package lexerql

import (
	"strings"
	"text/scanner"
	"time"

	"github.com/prometheus/common/model"
)

// DurationParser parses a PromQL duration string like "1h30m".
//
// A custom parser may accept additional syntax (e.g. template
// placeholders); it must be set before the first parse and not changed
// afterwards.
type DurationParser func(s string) (time.Duration, error)

// ParseDuration parses a PromQL duration.
//
// Units are ms, s, m, h, d, w, y, combined from largest to smallest,
// each at most once.
func ParseDuration(s string) (time.Duration, error) {
	d, err := model.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(d), nil
}

// ScanDuration scans a duration from given scanner.
//
// The numeric prefix is expected to be consumed already and is passed
// as number.
func ScanDuration(s *scanner.Scanner, number string, parse DurationParser) (string, error) {
	var sb strings.Builder
	sb.WriteString(number)

	for {
		ch := s.Peek()
		if !IsDigit(ch) && !IsDurationRune(ch) {
			break
		}
		sb.WriteRune(ch)
		s.Next()
	}

	duration := sb.String()
	if parse == nil {
		parse = ParseDuration
	}
	_, err := parse(duration)
	return duration, err
}

// IsDurationRune returns true, if r is a non-digit rune that could be part of
// a PromQL duration.
func IsDurationRune[R char](r R) bool {
	switch rune(r) {
	case 'm', 's', 'h', 'd', 'w', 'y':
		return true
	default:
		return false
	}
}
