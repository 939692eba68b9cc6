// Package lexerql provides utilities for lexing PromQL.
package lexerql

type char interface {
	byte | rune
}

// IsDigit returns true, if r is an ASCII digit.
func IsDigit[R char](r R) bool {
	return r >= '0' && r <= '9'
}

// IsLetter returns true, if r is an ASCII letter.
func IsLetter[R char](r R) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// IsIdentStartRune returns true, if r is a valid first character of a Prometheus label.
func IsIdentStartRune[R char](r R) bool {
	return IsLetter(r) || r == '_'
}

// IsIdentRune returns true, if r is a valid character of a Prometheus label.
func IsIdentRune[R char](r R) bool {
	return IsLetter(r) || IsDigit(r) || r == '_'
}

// IsMetricIdentRune returns true, if r is a valid non-first character of a
// Prometheus metric name, including the recording rule separator ':'.
func IsMetricIdentRune[R char](r R) bool {
	return IsIdentRune(r) || r == ':'
}
