// Package sema turns the concrete syntax tree into a statement-oriented IR
// and qualifies every label with the scopes open where it appears.
//
// Scopes are opened by label directives. Given
//
//	outer:
//	.res >inner .byte
//
// the label directive resolves to "outer" and pushes it, so the
// reservation, written with one auto scope prefix, resolves to
// "outer>inner".
package sema
