// Package promql contains PromQL parser, type checker and printer.
//
// The pipeline is split the usual way: [lexer.Tokenize] produces
// tokens, [Parse] builds an [Expr] tree with source spans, [TypeCheck]
// validates it against PromQL's value types and [Print] renders it
// back as canonical PromQL.
//
// Everything is a pure function of its input: there is no shared
// mutable state, so independent goroutines may parse, check and print
// concurrently. The function and aggregation catalogues are fixed at
// build time.
package promql
