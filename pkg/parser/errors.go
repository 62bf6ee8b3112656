package parser

import "fmt"

// Error describes a grammar violation. Parsing stops at the first one.
type Error struct {
	Msg  string
	line int
}

func (p *Parser) errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), line: p.line}
}

// Line returns the 1-based line of the last token consumed before the
// violation was detected.
func (e *Error) Line() int { return e.line }

// Desc returns the user-facing description of the error.
func (e *Error) Desc() string {
	return fmt.Sprintf("*** PARSER ERROR [LINE %d]: %s", e.line, e.Msg)
}

// Error returns the same text as Desc.
func (e *Error) Error() string { return e.Desc() }
