package parser

import (
	"asmfront/pkg/lexer"
)

// Parser consumes the token slice produced by lexer.Tokenise and builds a
// concrete syntax tree.
//
// Grammar:
//
//	File                 = Statements '\n'* Eof
//	Statements           = Statement*
//	Statement            = '\n'* (ResDirective | StartDirective | ImportDirective
//	                              | ExportDirective | LabelDirective | Instruction | Macro) ('\n' | Eof)
//	LabelDefinition      = AutoScopePrefix Identifier
//	AutoScopePrefix      = '>'*
//	LabelAccess          = '$' AutoScopePrefix Scopes Identifier
//	Scopes               = Scope*
//	Scope                = Identifier '>'
//	LabelExternal        = '(' Scopes Identifier ')'
//	ResDirective         = '.res' LabelDefinition TypeDirective Assignment?
//	TypeDirective        = ByteDirective | BytesDirective | ArrDirective
//	ByteDirective        = '.byte'
//	BytesDirective       = '.bytes' Number
//	ArrDirective         = '.arr' Number TypeDirective
//	Assignment           = '{' AssignmentValues '}' AssignmentRepetition?
//	AssignmentValues     = AssignmentValue*
//	AssignmentRepetition = '*' Number?
//	AssignmentValue      = Assignment | Number | String
//	StartDirective       = '.start' ':'
//	ImportDirective      = '.import' LabelDefinition LabelExternal
//	ExportDirective      = '.export' LabelAccess LabelExternal
//	LabelDirective       = LabelDefinition ':'
//	Instruction          = InstructionToken ConditionCode? InstructionArguments
//	ConditionCode        = ':' ConditionCodeToken
//	InstructionArguments = InstructionArgument*
//	InstructionArgument  = Register | SystemRegister | Port | Number | String | LongRegister
//	Macro                = MacroToken ConditionCode? MacroArguments
//	MacroArguments       = MacroArgument*
//	MacroArgument        = LabelAccess | Register | Number | LongRegister
//
// Every rule returns a Result. Alternatives are tried in the order listed
// and the first one that does not report NotPresent wins.
type Parser struct {
	tokens []lexer.Token
	pos    int
	line   int // line of the last consumed token
}

// New returns a parser positioned at the first token.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, line: 1}
}

// Parse builds the CST for a complete token list. The returned error, if
// not nil, is a *Error.
func Parse(tokens []lexer.Token) (*Node, error) {
	r := New(tokens).File()
	if r.IsFailed() {
		return nil, r.Err
	}
	return r.Node, nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		return lexer.Token{Kind: lexer.Eof, Line: p.line}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	p.line = tok.Line
	return tok
}

// popKind consumes the current token if it has the given kind.
func (p *Parser) popKind(kind lexer.TokenKind) (lexer.Token, bool) {
	if p.pos >= len(p.tokens) || p.peek().Kind != kind {
		return lexer.Token{}, false
	}
	return p.advance(), true
}

// popLexeme consumes the current token if its text is exactly lexeme.
func (p *Parser) popLexeme(lexeme string) (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	if t := p.peek(); t.Kind == lexer.String || t.Lexeme != lexeme {
		return lexer.Token{}, false
	}
	return p.advance(), true
}

// count consumes a non-negative number literal used as a size or a
// repetition count.
func (p *Parser) count(what string) (lexer.Token, *Error) {
	tok, ok := p.popKind(lexer.Number)
	if !ok {
		return tok, p.errorf("Expected a number (%s)", what)
	}
	if v, err := lexer.ParseNumber(tok.Lexeme); err != nil || v < 0 {
		return tok, p.errorf("Expected a non-negative number (%s), not %s", what, tok.Lexeme)
	}
	return tok, nil
}

// File parses the whole token list. It never reports NotPresent.
func (p *Parser) File() Result {
	stmts := p.statements()
	if stmts.IsFailed() {
		return stmts
	}

	for {
		if _, ok := p.popLexeme(lexer.Newline); !ok {
			break
		}
	}

	// peek stands in an Eof once the tokens run out, so a list without the
	// lexer's trailing Eof still ends the file.
	if t := p.peek(); t.Kind != lexer.Eof {
		return failed(&Error{
			Msg:  "Expected a statement, not " + t.Kind.String() + " '" + t.Lexeme + "'.",
			line: t.Line,
		})
	}
	eof := p.advance()
	return matched(nonterminal(File, []*Node{stmts.Node, terminal(eof)}))
}

func (p *Parser) statements() Result {
	var children []*Node
	for {
		r := p.statement()
		switch r.Outcome {
		case Matched:
			children = append(children, r.Node)
			continue
		case Failed:
			return r
		}
		break
	}
	return matched(nonterminal(Statements, children))
}

func (p *Parser) statement() Result {
	start, line := p.pos, p.line
	for {
		if _, ok := p.popLexeme(lexer.Newline); !ok {
			break
		}
	}

	body := p.firstOf(
		p.resDirective,
		p.startDirective,
		p.importDirective,
		p.exportDirective,
		p.labelDirective,
		p.instruction,
		p.macro,
	)
	switch body.Outcome {
	case NotPresent:
		p.pos, p.line = start, line
		return body
	case Failed:
		return body
	}

	children := []*Node{body.Node}
	if nl, ok := p.popLexeme(lexer.Newline); ok {
		children = append(children, terminal(nl))
	} else if t := p.peek(); t.Kind != lexer.Eof {
		return failed(p.errorf("Expected a new line after a statement, not %s '%s'; %s unterminated.",
			t.Kind, t.Lexeme, body.Node.Desc()))
	}
	return matched(nonterminal(Statement, children))
}

func (p *Parser) labelDefinition() Result {
	prefix := p.autoScopePrefix()

	id, ok := p.popKind(lexer.Identifier)
	if !ok {
		if prefix.Len() == 0 {
			return notPresent()
		}
		return failed(p.errorf("Expected identifier after auto scope prefix (>)."))
	}
	return matched(nonterminal(LabelDefinition, []*Node{prefix, terminal(id)}))
}

// autoScopePrefix always matches, possibly with no children.
func (p *Parser) autoScopePrefix() *Node {
	var children []*Node
	for {
		tok, ok := p.popLexeme(">")
		if !ok {
			break
		}
		children = append(children, terminal(tok))
	}
	return nonterminal(AutoScopePrefix, children)
}

func (p *Parser) labelAccess() Result {
	sigil, ok := p.popLexeme("$")
	if !ok {
		return notPresent()
	}
	prefix := p.autoScopePrefix()
	scopes := p.scopes()

	id, ok := p.popKind(lexer.Identifier)
	if !ok {
		return failed(p.errorf("Expected identifier after a scope specification."))
	}
	return matched(nonterminal(LabelAccess, []*Node{terminal(sigil), prefix, scopes, terminal(id)}))
}

// scopes always matches, possibly with no children.
func (p *Parser) scopes() *Node {
	var children []*Node
	for {
		s := p.scope()
		if s == nil {
			break
		}
		children = append(children, s)
	}
	return nonterminal(Scopes, children)
}

// scope consumes an identifier only when the token after it is '>'.
func (p *Parser) scope() *Node {
	if p.peek().Kind != lexer.Identifier || !p.peekAt(1).Is(">") {
		return nil
	}
	id := p.advance()
	sep := p.advance()
	return nonterminal(Scope, []*Node{terminal(id), terminal(sep)})
}

func (p *Parser) labelExternal() Result {
	open, ok := p.popLexeme("(")
	if !ok {
		return notPresent()
	}
	scopes := p.scopes()

	id, ok := p.popKind(lexer.Identifier)
	if !ok {
		return failed(p.errorf("Expected identifier in an external label."))
	}
	closing, ok := p.popLexeme(")")
	if !ok {
		return failed(p.errorf("External label must be terminated with )."))
	}
	return matched(nonterminal(LabelExternal, []*Node{terminal(open), scopes, terminal(id), terminal(closing)}))
}

func (p *Parser) resDirective() Result {
	tok, ok := p.popLexeme(".res")
	if !ok {
		return notPresent()
	}
	children := []*Node{terminal(tok)}

	def := p.labelDefinition()
	switch def.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected label definition after .res directive."))
	case Failed:
		return def
	}
	children = append(children, def.Node)

	typ := p.typeDirective()
	switch typ.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected type in .res directive."))
	case Failed:
		return typ
	}
	children = append(children, typ.Node)

	asg := p.assignment()
	switch asg.Outcome {
	case Matched:
		children = append(children, asg.Node)
	case Failed:
		return asg
	}
	return matched(nonterminal(ResDirective, children))
}

func (p *Parser) typeDirective() Result {
	r := p.firstOf(p.byteDirective, p.bytesDirective, p.arrDirective)
	if !r.IsMatched() {
		return r
	}
	return matched(nonterminal(TypeDirective, []*Node{r.Node}))
}

func (p *Parser) byteDirective() Result {
	tok, ok := p.popLexeme(".byte")
	if !ok {
		return notPresent()
	}
	return matched(nonterminal(ByteDirective, []*Node{terminal(tok)}))
}

func (p *Parser) bytesDirective() Result {
	tok, ok := p.popLexeme(".bytes")
	if !ok {
		return notPresent()
	}
	size, err := p.count("element size after a .bytes directive")
	if err != nil {
		return failed(err)
	}
	return matched(nonterminal(BytesDirective, []*Node{terminal(tok), terminal(size)}))
}

func (p *Parser) arrDirective() Result {
	tok, ok := p.popLexeme(".arr")
	if !ok {
		return notPresent()
	}
	size, err := p.count("array size after an .arr directive")
	if err != nil {
		return failed(err)
	}

	elem := p.typeDirective()
	switch elem.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected type in .arr directive."))
	case Failed:
		return elem
	}
	return matched(nonterminal(ArrDirective, []*Node{terminal(tok), terminal(size), elem.Node}))
}

func (p *Parser) assignment() Result {
	open, ok := p.popLexeme("{")
	if !ok {
		return notPresent()
	}

	values := p.assignmentValues()
	if values.IsFailed() {
		return values
	}

	closing, ok := p.popLexeme("}")
	if !ok {
		return failed(p.errorf("Assignment list must be terminated with }."))
	}
	children := []*Node{terminal(open), values.Node, terminal(closing)}

	rep := p.assignmentRepetition()
	switch rep.Outcome {
	case Matched:
		children = append(children, rep.Node)
	case Failed:
		return rep
	}
	return matched(nonterminal(Assignment, children))
}

func (p *Parser) assignmentRepetition() Result {
	star, ok := p.popLexeme("*")
	if !ok {
		return notPresent()
	}
	children := []*Node{terminal(star)}

	if p.peek().Kind == lexer.Number {
		n, err := p.count("repetition count after *")
		if err != nil {
			return failed(err)
		}
		children = append(children, terminal(n))
	}
	return matched(nonterminal(AssignmentRepetition, children))
}

func (p *Parser) assignmentValues() Result {
	var children []*Node
	for {
		r := p.assignmentValue()
		switch r.Outcome {
		case Matched:
			children = append(children, r.Node)
			continue
		case Failed:
			return r
		}
		break
	}
	return matched(nonterminal(AssignmentValues, children))
}

func (p *Parser) assignmentValue() Result {
	nested := p.assignment()
	switch nested.Outcome {
	case Matched:
		return matched(nonterminal(AssignmentValue, []*Node{nested.Node}))
	case Failed:
		return nested
	}

	if tok, ok := p.popKind(lexer.Number); ok {
		return matched(nonterminal(AssignmentValue, []*Node{terminal(tok)}))
	}
	if tok, ok := p.popKind(lexer.String); ok {
		return matched(nonterminal(AssignmentValue, []*Node{terminal(tok)}))
	}
	return notPresent()
}

func (p *Parser) startDirective() Result {
	tok, ok := p.popLexeme(".start")
	if !ok {
		return notPresent()
	}
	colon, ok := p.popLexeme(":")
	if !ok {
		return failed(p.errorf("Expected : after a .start directive."))
	}
	return matched(nonterminal(StartDirective, []*Node{terminal(tok), terminal(colon)}))
}

func (p *Parser) importDirective() Result {
	tok, ok := p.popLexeme(".import")
	if !ok {
		return notPresent()
	}

	def := p.labelDefinition()
	switch def.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected label definition after .import directive."))
	case Failed:
		return def
	}

	ext := p.labelExternal()
	switch ext.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected external label in .import directive."))
	case Failed:
		return ext
	}
	return matched(nonterminal(ImportDirective, []*Node{terminal(tok), def.Node, ext.Node}))
}

func (p *Parser) exportDirective() Result {
	tok, ok := p.popLexeme(".export")
	if !ok {
		return notPresent()
	}

	acc := p.labelAccess()
	switch acc.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected label access after .export directive."))
	case Failed:
		return acc
	}

	ext := p.labelExternal()
	switch ext.Outcome {
	case NotPresent:
		return failed(p.errorf("Expected external label in .export directive."))
	case Failed:
		return ext
	}
	return matched(nonterminal(ExportDirective, []*Node{terminal(tok), acc.Node, ext.Node}))
}

func (p *Parser) labelDirective() Result {
	def := p.labelDefinition()
	if !def.IsMatched() {
		return def
	}
	colon, ok := p.popLexeme(":")
	if !ok {
		return failed(p.errorf("Expected : after a label directive."))
	}
	return matched(nonterminal(LabelDirective, []*Node{def.Node, terminal(colon)}))
}

func (p *Parser) instruction() Result {
	tok, ok := p.popKind(lexer.Instruction)
	if !ok {
		return notPresent()
	}
	children := []*Node{terminal(tok)}

	cond := p.conditionCode()
	switch cond.Outcome {
	case Matched:
		children = append(children, cond.Node)
	case Failed:
		return cond
	}

	var args []*Node
	for {
		arg, ok := p.popAnyKind(lexer.Register, lexer.SystemRegister, lexer.Port,
			lexer.Number, lexer.String, lexer.LongRegister)
		if !ok {
			break
		}
		args = append(args, nonterminal(InstructionArgument, []*Node{terminal(arg)}))
	}
	children = append(children, nonterminal(InstructionArguments, args))
	return matched(nonterminal(Instruction, children))
}

func (p *Parser) conditionCode() Result {
	colon, ok := p.popLexeme(":")
	if !ok {
		return notPresent()
	}
	cc, ok := p.popKind(lexer.ConditionCode)
	if !ok {
		return failed(p.errorf("Expected condition code after :."))
	}
	return matched(nonterminal(ConditionCode, []*Node{terminal(colon), terminal(cc)}))
}

func (p *Parser) macro() Result {
	tok, ok := p.popKind(lexer.Macro)
	if !ok {
		return notPresent()
	}
	children := []*Node{terminal(tok)}

	cond := p.conditionCode()
	switch cond.Outcome {
	case Matched:
		children = append(children, cond.Node)
	case Failed:
		return cond
	}

	var args []*Node
	for {
		r := p.macroArgument()
		if r.IsFailed() {
			return r
		}
		if !r.IsMatched() {
			break
		}
		args = append(args, r.Node)
	}
	children = append(children, nonterminal(MacroArguments, args))
	return matched(nonterminal(Macro, children))
}

func (p *Parser) macroArgument() Result {
	acc := p.labelAccess()
	switch acc.Outcome {
	case Matched:
		return matched(nonterminal(MacroArgument, []*Node{acc.Node}))
	case Failed:
		return acc
	}

	if tok, ok := p.popAnyKind(lexer.Register, lexer.Number, lexer.LongRegister); ok {
		return matched(nonterminal(MacroArgument, []*Node{terminal(tok)}))
	}
	return notPresent()
}

// popAnyKind consumes the current token if it has one of the given kinds.
func (p *Parser) popAnyKind(kinds ...lexer.TokenKind) (lexer.Token, bool) {
	for _, k := range kinds {
		if tok, ok := p.popKind(k); ok {
			return tok, true
		}
	}
	return lexer.Token{}, false
}
