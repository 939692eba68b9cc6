package main

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/fatih/color"
	"github.com/go-faster/errors"

	"github.com/go-faster/promql"
)

// renderError prints a colored diagnostic with a caret under the
// offending position and returns the original error for the exit code.
func renderError(w io.Writer, query string, err error) error {
	pos, ok := errorPosition(err)

	errColor := color.New(color.FgRed, color.Bold)
	errColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err.Error())

	// A caret only makes sense for single-line queries.
	if ok && pos.Line == 1 && !strings.ContainsRune(query, '\n') {
		fmt.Fprintln(w, "  "+query)
		col := pos.Column
		if col < 1 || col > len(query)+1 {
			col = 1
		}
		fmt.Fprint(w, strings.Repeat(" ", col+1))
		color.New(color.FgYellow).Fprintln(w, "^")
	}
	return err
}

func errorPosition(err error) (scanner.Position, bool) {
	var parseErr *promql.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Pos, true
	}
	var typeErr *promql.TypeError
	if errors.As(err, &typeErr) {
		return typeErr.Pos, true
	}
	return scanner.Position{}, false
}
