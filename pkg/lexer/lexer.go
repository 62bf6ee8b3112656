package lexer

import (
	"strings"
	"unicode"
)

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// advance consumes one rune and returns it. The line counter is bumped by
// the caller that emits the newline token, not here.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	return r
}

func isWordChar(r rune) bool {
	return r < unicode.MaxASCII && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isPunctuation(r rune) bool {
	return strings.ContainsRune("{}:*>()$", r)
}

func isBlank(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

// skipComment discards everything up to, but not including, the next newline.
func (l *Lexer) skipComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanWordRun appends the run of word characters at the current position to b.
func (l *Lexer) scanWordRun(b *strings.Builder) {
	for !l.atEnd() && isWordChar(l.peek()) {
		b.WriteRune(l.advance())
	}
}

// scanWord collects a word and classifies it against the name tables.
// The first word character must still be at l.peek().
func (l *Lexer) scanWord() Token {
	var b strings.Builder
	l.scanWordRun(&b)
	lexeme := b.String()
	return Token{Kind: wordKind(lexeme), Lexeme: lexeme, Line: l.line}
}

// scanSigilWord collects a '!' macro name or a '.' directive name. The
// sigil must still be at l.peek().
func (l *Lexer) scanSigilWord(kind TokenKind) (Token, error) {
	var b strings.Builder
	b.WriteRune(l.advance())
	l.scanWordRun(&b)
	lexeme := b.String()

	switch kind {
	case Macro:
		if !IsMacro(lexeme) {
			e := newError(InvalidMacro, l.line)
			e.Text = lexeme
			return Token{}, e
		}
	case Directive:
		if !IsDirective(lexeme) {
			e := newError(InvalidDirective, l.line)
			e.Text = lexeme
			return Token{}, e
		}
	}
	return Token{Kind: kind, Lexeme: lexeme, Line: l.line}, nil
}

// scanNumber collects a numeric literal. The '#' must still be at l.peek().
// When no radix letter is written, 'd' is inserted into the lexeme before
// the digits are checked, so "#" alone reports "#d".
func (l *Lexer) scanNumber() (Token, error) {
	var b strings.Builder
	b.WriteRune(l.advance())

	signed := false
	if l.peek() == '-' {
		b.WriteRune(l.advance())
		signed = true
	}

	radix := 'd'
	if isRadixPrefix(l.peek()) {
		radix = l.advance()
	}
	b.WriteRune(radix)

	if !signed && l.peek() == '-' {
		b.WriteRune(l.advance())
	}

	digits := 0
	for !l.atEnd() && isValidDigit(radix, l.peek()) {
		b.WriteRune(l.advance())
		digits++
	}

	lexeme := b.String()
	if digits == 0 {
		e := newError(InvalidNumberLit, l.line)
		e.Text = lexeme
		return Token{}, e
	}
	if _, err := ParseNumber(lexeme); err != nil {
		e := newError(InvalidNumberLit, l.line)
		e.Text = lexeme
		return Token{}, e
	}
	return Token{Kind: Number, Lexeme: lexeme, Line: l.line}, nil
}

// scanString collects a string literal including both quotes. The opening
// quote must still be at l.peek().
func (l *Lexer) scanString() (Token, error) {
	var b strings.Builder
	b.WriteRune(l.advance())

	for !l.atEnd() && l.peek() != '"' {
		r := l.peek()
		if unicode.IsControl(r) {
			e := newError(InvalidCharacterInString, l.line)
			e.Char = r
			return Token{}, e
		}
		b.WriteRune(l.advance())
	}
	if l.atEnd() {
		return Token{}, newError(UnterminatedString, l.line)
	}
	b.WriteRune(l.advance())

	return Token{Kind: String, Lexeme: b.String(), Line: l.line}, nil
}

// nextToken returns the next token, or ok == false when only blanks and
// comments were left before the end of input.
func (l *Lexer) nextToken() (tok Token, ok bool, err error) {
	for !l.atEnd() {
		ch := l.peek()

		switch {
		case ch == ';':
			l.skipComment()
		case ch == '\n':
			l.advance()
			tok = Token{Kind: Punctuation, Lexeme: Newline, Line: l.line}
			l.line++
			return tok, true, nil
		case isWordChar(ch):
			return l.scanWord(), true, nil
		case ch == '!':
			tok, err = l.scanSigilWord(Macro)
			return tok, err == nil, err
		case ch == '.':
			tok, err = l.scanSigilWord(Directive)
			return tok, err == nil, err
		case ch == '#':
			tok, err = l.scanNumber()
			return tok, err == nil, err
		case ch == '"':
			tok, err = l.scanString()
			return tok, err == nil, err
		case isPunctuation(ch):
			l.advance()
			return Token{Kind: Punctuation, Lexeme: string(ch), Line: l.line}, true, nil
		case isBlank(ch):
			l.advance()
		default:
			e := newError(UnknownSymbol, l.line)
			e.Char = ch
			return Token{}, false, e
		}
	}
	return Token{}, false, nil
}

// Tokenise scans src and returns all tokens including the final Eof token.
// It stops at the first lexical error and returns no tokens in that case.
func Tokenise(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, ok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return append(tokens, eofToken(l.line)), nil
}
