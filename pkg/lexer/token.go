package lexer

import "fmt"

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	Instruction TokenKind = iota
	Macro
	Directive
	Register
	LongRegister
	SystemRegister
	Port
	ConditionCode
	Identifier
	Number      // #[-]?[boxd][-]?digits, radix letter always present in the lexeme
	String      // "..." including the quotes
	Punctuation // { } : * > ( ) $ and the newline
	Eof         // sentinel: end of input
)

var kindNames = [...]string{
	Instruction:    "Instruction",
	Macro:          "Macro",
	Directive:      "Directive",
	Register:       "Register",
	LongRegister:   "LongRegister",
	SystemRegister: "SystemRegister",
	Port:           "Port",
	ConditionCode:  "ConditionCode",
	Identifier:     "Identifier",
	Number:         "Number",
	String:         "String",
	Punctuation:    "Punctuation",
	Eof:            "Eof",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical unit produced by Tokenise.
type Token struct {
	Kind   TokenKind
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-14s %-14q  line %d", t.Kind, t.Lexeme, t.Line)
}

// Is reports whether t is a punctuation token with the given lexeme.
func (t Token) Is(lexeme string) bool {
	return t.Kind == Punctuation && t.Lexeme == lexeme
}

// Newline is the lexeme of the statement-terminating punctuation token.
const Newline = "\n"

func eofToken(line int) Token {
	return Token{Kind: Eof, Lexeme: "", Line: line}
}
