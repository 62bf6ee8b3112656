package lexer

import "fmt"

// ErrorKind identifies the lexical rule that was violated.
type ErrorKind int

const (
	UnknownSymbol ErrorKind = iota
	InvalidMacro
	InvalidDirective
	InvalidNumberLit
	InvalidCharacterInString
	UnterminatedString
)

var errorKindNames = [...]string{
	UnknownSymbol:            "UnknownSymbol",
	InvalidMacro:             "InvalidMacro",
	InvalidDirective:         "InvalidDirective",
	InvalidNumberLit:         "InvalidNumberLit",
	InvalidCharacterInString: "InvalidCharacterInString",
	UnterminatedString:       "UnterminatedString",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the first lexical error found in a source text.
//
// Char is set for UnknownSymbol and InvalidCharacterInString, Text for
// InvalidMacro, InvalidDirective and InvalidNumberLit.
type Error struct {
	Kind ErrorKind
	Char rune
	Text string
	line int
}

func newError(kind ErrorKind, line int) *Error {
	return &Error{Kind: kind, line: line}
}

// Line returns the 1-based source line of the error.
func (e *Error) Line() int { return e.line }

func (e *Error) message() string {
	switch e.Kind {
	case UnknownSymbol:
		return fmt.Sprintf("Unknown character found: %q", e.Char)
	case InvalidMacro:
		return "Invalid macro found: " + e.Text
	case InvalidDirective:
		return "Invalid directive found: " + e.Text
	case InvalidNumberLit:
		return "Invalid number literal found: " + e.Text
	case InvalidCharacterInString:
		return fmt.Sprintf("Invalid character in a string found: %q", e.Char)
	case UnterminatedString:
		return "Unterminated string found"
	}
	return e.Kind.String()
}

// Desc returns the user-facing description of the error.
func (e *Error) Desc() string {
	return fmt.Sprintf("*** LEXER ERROR [LINE %d]: %s", e.line, e.message())
}

// Error returns the same text as Desc.
func (e *Error) Error() string { return e.Desc() }
