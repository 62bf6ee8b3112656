package sema

import "fmt"

// Error is a semantic error. In this package it only reports labels whose
// auto scope prefix reaches above the open scopes.
type Error struct {
	Msg  string
	line int
}

func newError(line int, msg string) *Error {
	return &Error{Msg: msg, line: line}
}

// Line returns the 1-based line of the statement that failed.
func (e *Error) Line() int { return e.line }

// Desc returns the user-facing description of the error.
func (e *Error) Desc() string {
	return fmt.Sprintf("*** SEMA ERROR [LINE %d]: %s", e.line, e.Msg)
}

// Error returns the same text as Desc.
func (e *Error) Error() string { return e.Desc() }
