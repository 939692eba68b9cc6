package promql

import (
	"fmt"
	"strings"
	"text/scanner"
)

// ParseError is a PromQL parsing error.
type ParseError struct {
	Pos scanner.Position
	// Unexpected and Expected describe a token mismatch. Msg is set
	// instead for errors that are not about a single token.
	Unexpected string
	Expected   string
	Msg        string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Expected != "" {
		return fmt.Sprintf("Syntax error (line %d, column %d): unexpected %s, expected %s",
			e.Pos.Line, e.Pos.Column, e.Unexpected, e.Expected)
	}
	return fmt.Sprintf("Syntax error (line %d, column %d): unexpected %s",
		e.Pos.Line, e.Pos.Column, e.Unexpected)
}

// TypeError is a type checking error.
type TypeError struct {
	Pos scanner.Position
	// Expected and Actual describe a value type mismatch. Msg is set
	// instead for operator-specific rules.
	Expected []ValueType
	Actual   ValueType
	Msg      string
}

// Error implements error.
func (e *TypeError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	names := make([]string, len(e.Expected))
	for i, vt := range e.Expected {
		names[i] = vt.String()
	}
	return fmt.Sprintf("Unexpected type '%s' was provided, expected %s: %d (line %d, column %d)",
		e.Actual, strings.Join(names, " or "), e.Pos.Offset, e.Pos.Line, e.Pos.Column)
}
