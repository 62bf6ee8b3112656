package sema

import (
	"fmt"

	"asmfront/pkg/lexer"
	"asmfront/pkg/parser"
)

// Build translates a CST produced by parser.Parse into the IR. Labels are
// left unresolved.
//
// Build trusts the grammar: a node of an unexpected kind means the parser
// and the builder disagree, and Build panics.
func Build(root *parser.Node) *File {
	expect(root, parser.File)
	stmts := root.Child(0)
	expect(stmts, parser.Statements)

	f := &File{Statements: make([]Statement, 0, stmts.Len())}
	for _, s := range stmts.Children {
		f.Statements = append(f.Statements, buildStatement(s))
	}
	return f
}

func expect(n *parser.Node, kind parser.Kind) {
	if n.Kind != kind {
		panic(fmt.Sprintf("sema: expected %v node, got %v", kind, n.Kind))
	}
}

func expectToken(n *parser.Node, kind lexer.TokenKind) lexer.Token {
	if !n.IsTerminal() || n.Token.Kind != kind {
		panic(fmt.Sprintf("sema: expected %v token, got %v", kind, n))
	}
	return *n.Token
}

// firstLine returns the line of the leftmost token below n.
func firstLine(n *parser.Node) int {
	if n.IsTerminal() {
		return n.Token.Line
	}
	for _, c := range n.Children {
		if l := firstLine(c); l > 0 {
			return l
		}
	}
	return 0
}

func buildStatement(n *parser.Node) Statement {
	expect(n, parser.Statement)
	body := n.Child(0)
	pos := Pos{SourceLine: firstLine(body)}

	switch body.Kind {
	case parser.ResDirective:
		return buildResDirective(body, pos)
	case parser.StartDirective:
		return &StartDirective{Pos: pos}
	case parser.ImportDirective:
		return &ImportDirective{
			Pos:         pos,
			LabelIntern: buildLabelDefinition(body.Child(1)),
			LabelExtern: buildLabelExternal(body.Child(2)),
		}
	case parser.ExportDirective:
		return &ExportDirective{
			Pos:         pos,
			LabelIntern: *buildLabelAccess(body.Child(1)),
			LabelExtern: buildLabelExternal(body.Child(2)),
		}
	case parser.LabelDirective:
		return &LabelDirective{Pos: pos, Label: buildLabelDefinition(body.Child(0))}
	case parser.Instruction:
		return buildInstruction(body, pos)
	case parser.Macro:
		return buildMacro(body, pos)
	}
	panic(fmt.Sprintf("sema: unexpected statement %v", body.Kind))
}

//  Labels

func buildLabelDefinition(n *parser.Node) LabelDefinition {
	expect(n, parser.LabelDefinition)
	expect(n.Child(0), parser.AutoScopePrefix)
	return LabelDefinition{
		PrefixCount: n.Child(0).Len(),
		Label:       expectToken(n.Child(1), lexer.Identifier).Lexeme,
	}
}

// [$, AutoScopePrefix, Scopes, Identifier]
func buildLabelAccess(n *parser.Node) *LabelAccess {
	expect(n, parser.LabelAccess)
	expect(n.Child(1), parser.AutoScopePrefix)
	return &LabelAccess{
		PrefixCount: n.Child(1).Len(),
		Scopes:      buildScopes(n.Child(2)),
		Label:       expectToken(n.Child(3), lexer.Identifier).Lexeme,
	}
}

// ['(', Scopes, Identifier, ')']
func buildLabelExternal(n *parser.Node) LabelExternal {
	expect(n, parser.LabelExternal)
	return LabelExternal{
		Scopes: buildScopes(n.Child(1)),
		Label:  expectToken(n.Child(2), lexer.Identifier).Lexeme,
	}
}

func buildScopes(n *parser.Node) []string {
	expect(n, parser.Scopes)
	var scopes []string
	for _, s := range n.Children {
		expect(s, parser.Scope)
		scopes = append(scopes, expectToken(s.Child(0), lexer.Identifier).Lexeme)
	}
	return scopes
}

//  Literals

func decodeNumber(n *parser.Node) int32 {
	tok := expectToken(n, lexer.Number)
	v, err := lexer.ParseNumber(tok.Lexeme)
	if err != nil {
		panic(fmt.Sprintf("sema: lexer accepted bad number %q: %v", tok.Lexeme, err))
	}
	return v
}

// decodeCount decodes a size or repetition count. The parser only accepts
// non-negative ones.
func decodeCount(n *parser.Node) uint32 {
	v := decodeNumber(n)
	if v < 0 {
		panic(fmt.Sprintf("sema: negative count %d", v))
	}
	return uint32(v)
}

// decodeString strips the quotes.
func decodeString(n *parser.Node) []rune {
	runes := []rune(expectToken(n, lexer.String).Lexeme)
	return runes[1 : len(runes)-1]
}

//  Reservations

// [.res, LabelDefinition, TypeDirective, Assignment?]
func buildResDirective(n *parser.Node, pos Pos) *ResDirective {
	if n.Len() != 3 && n.Len() != 4 {
		panic(fmt.Sprintf("sema: ResDirective with %d children", n.Len()))
	}
	res := &ResDirective{
		Pos:      pos,
		Label:    buildLabelDefinition(n.Child(1)),
		DataType: buildDataType(n.Child(2)),
	}
	if n.Len() == 4 {
		res.Assignment = buildAssignment(n.Child(3))
	}
	return res
}

func buildDataType(n *parser.Node) DataType {
	expect(n, parser.TypeDirective)
	inner := n.Child(0)

	switch inner.Kind {
	case parser.ByteDirective:
		return Byte{}
	case parser.BytesDirective:
		return Bytes{ElementSize: decodeCount(inner.Child(1))}
	case parser.ArrDirective:
		return Arr{
			Count: decodeCount(inner.Child(1)),
			Elem:  buildDataType(inner.Child(2)),
		}
	}
	panic(fmt.Sprintf("sema: unexpected type %v", inner.Kind))
}

// ['{', AssignmentValues, '}', AssignmentRepetition?]
func buildAssignment(n *parser.Node) *Assignment {
	expect(n, parser.Assignment)
	values := n.Child(1)
	expect(values, parser.AssignmentValues)

	a := &Assignment{Repetition: 1, Repeat: RepeatOnce}
	for _, v := range values.Children {
		a.Values = append(a.Values, buildAssignmentValue(v))
	}

	if n.Len() == 4 {
		rep := n.Child(3)
		expect(rep, parser.AssignmentRepetition)
		if rep.Len() == 2 {
			a.Repeat, a.Repetition = RepeatCount, decodeCount(rep.Child(1))
		} else {
			a.Repeat, a.Repetition = RepeatFill, 0
		}
	}
	return a
}

func buildAssignmentValue(n *parser.Node) AssignmentValue {
	expect(n, parser.AssignmentValue)
	c := n.Child(0)
	if !c.IsTerminal() {
		return buildAssignment(c)
	}
	switch c.Token.Kind {
	case lexer.Number:
		return NumberValue(decodeNumber(c))
	case lexer.String:
		return StringValue(decodeString(c))
	}
	panic(fmt.Sprintf("sema: unexpected assignment value %v", c))
}

//  Instructions and macros

// condition returns the condition code of an Instruction or Macro node, or
// "" when it has none. The arguments are always the last child.
func condition(n *parser.Node) string {
	if n.Len() != 3 {
		return ""
	}
	cc := n.Child(1)
	expect(cc, parser.ConditionCode)
	return expectToken(cc.Child(1), lexer.ConditionCode).Lexeme
}

func buildInstruction(n *parser.Node, pos Pos) *Instruction {
	ins := &Instruction{
		Pos:       pos,
		Mnemonic:  expectToken(n.Child(0), lexer.Instruction).Lexeme,
		Condition: condition(n),
	}
	args := n.Child(n.Len() - 1)
	expect(args, parser.InstructionArguments)

	for _, a := range args.Children {
		expect(a, parser.InstructionArgument)
		ins.Args = append(ins.Args, buildInstructionArg(a.Child(0)))
	}
	return ins
}

func buildInstructionArg(n *parser.Node) InstructionArg {
	if !n.IsTerminal() {
		panic(fmt.Sprintf("sema: unexpected instruction argument %v", n.Kind))
	}
	switch n.Token.Kind {
	case lexer.Register:
		return RegisterArg(n.Token.Lexeme)
	case lexer.LongRegister:
		return LongRegisterArg(n.Token.Lexeme)
	case lexer.SystemRegister:
		return SystemRegisterArg(n.Token.Lexeme)
	case lexer.Port:
		return PortArg(n.Token.Lexeme)
	case lexer.Number:
		return NumberArg(decodeNumber(n))
	case lexer.String:
		return StringArg(decodeString(n))
	}
	panic(fmt.Sprintf("sema: unexpected instruction argument %v", n))
}

func buildMacro(n *parser.Node, pos Pos) *Macro {
	m := &Macro{
		Pos:       pos,
		Mnemonic:  expectToken(n.Child(0), lexer.Macro).Lexeme,
		Condition: condition(n),
	}
	args := n.Child(n.Len() - 1)
	expect(args, parser.MacroArguments)

	for _, a := range args.Children {
		expect(a, parser.MacroArgument)
		m.Args = append(m.Args, buildMacroArg(a.Child(0)))
	}
	return m
}

func buildMacroArg(n *parser.Node) MacroArg {
	if !n.IsTerminal() {
		return buildLabelAccess(n)
	}
	switch n.Token.Kind {
	case lexer.Register:
		return RegisterArg(n.Token.Lexeme)
	case lexer.LongRegister:
		return LongRegisterArg(n.Token.Lexeme)
	case lexer.Number:
		return NumberArg(decodeNumber(n))
	}
	panic(fmt.Sprintf("sema: unexpected macro argument %v", n))
}
