// Package filter parses filter query strings selecting files of a collection by the
// values of their fields.
//
// # Overview
//
// The package follows a three stage compiler architecture:
//  1. Lexer: tokenizes the query
//  2. Parser: builds an AST of Expression nodes
//  3. Compile: resolves each attribute against the field schema and returns the
//     typed references used by a discovery
//
// # Filter Syntax
//
// An attribute filter selects files by the value of one field:
//
//	cycle_number=12          # Equal
//	cycle_number=1,2,3       # One of the values
//	cycle_number=1..10       # Half-open range, 10 excluded
//	cycle_number=..10        # Unbounded start
//	time=2023-05-01..2023-06 # Closed interval for times and periods
//	subset=Ex*               # Shell glob on the encoded value
//
// The value syntax is owned by the field, see field.Field.ParseReference.
//
// ## Negation Operator (!)
//
// The negation operator excludes matching files:
//
//	!subset=Basic
//
// ## Intersection Operator (|)
//
// The intersection operator narrows results. Every filter of the chain must match.
// Whitespace around operators is optional:
//
//	cycle_number=1..10 | subset=Expert | !pass_number=2
//
// A field filtered several times must satisfy every filter.
package filter
