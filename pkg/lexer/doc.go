// Package lexer turns assembly source text into classified tokens.
//
// Words are classified by membership in fixed name tables (instructions,
// registers, long registers, system registers, ports, condition codes).
// Newlines are emitted as punctuation tokens since they terminate
// statements. Every token list ends with an Eof token.
//
// Pipeline: source → Tokenise → parser.Parse → sema.Build → sema.Resolve
package lexer
