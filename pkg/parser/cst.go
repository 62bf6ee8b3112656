package parser

import (
	"fmt"
	"strconv"
	"strings"

	"asmfront/pkg/lexer"
)

// Kind tags a CST node with the grammar rule that produced it.
type Kind int

const (
	Terminal Kind = iota
	File
	Statements
	Statement
	ResDirective
	ImportDirective
	ExportDirective
	TypeDirective
	ByteDirective
	BytesDirective
	ArrDirective
	Assignment
	AssignmentRepetition
	AssignmentValues
	AssignmentValue
	StartDirective
	LabelDirective
	LabelDefinition
	AutoScopePrefix
	LabelAccess
	LabelExternal
	Scopes
	Scope
	Instruction
	ConditionCode
	InstructionArguments
	InstructionArgument
	Macro
	MacroArguments
	MacroArgument
)

var kindNames = [...]string{
	Terminal:             "Terminal",
	File:                 "File",
	Statements:           "Statements",
	Statement:            "Statement",
	ResDirective:         "ResDirective",
	ImportDirective:      "ImportDirective",
	ExportDirective:      "ExportDirective",
	TypeDirective:        "TypeDirective",
	ByteDirective:        "ByteDirective",
	BytesDirective:       "BytesDirective",
	ArrDirective:         "ArrDirective",
	Assignment:           "Assignment",
	AssignmentRepetition: "AssignmentRepetition",
	AssignmentValues:     "AssignmentValues",
	AssignmentValue:      "AssignmentValue",
	StartDirective:       "StartDirective",
	LabelDirective:       "LabelDirective",
	LabelDefinition:      "LabelDefinition",
	AutoScopePrefix:      "AutoScopePrefix",
	LabelAccess:          "LabelAccess",
	LabelExternal:        "LabelExternal",
	Scopes:               "Scopes",
	Scope:                "Scope",
	Instruction:          "Instruction",
	ConditionCode:        "ConditionCode",
	InstructionArguments: "InstructionArguments",
	InstructionArgument:  "InstructionArgument",
	Macro:                "Macro",
	MacroArguments:       "MacroArguments",
	MacroArgument:        "MacroArgument",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a CST node. A terminal wraps exactly one token and has no
// children; a nonterminal has a rule kind and ordered children. Children
// are addressed by grammar position only.
type Node struct {
	Kind     Kind
	Children []*Node
	Token    *lexer.Token // set for terminals only
}

func nonterminal(kind Kind, children []*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func terminal(tok lexer.Token) *Node {
	return &Node{Kind: Terminal, Token: &tok}
}

// Child returns the i-th child. It panics when i is out of range, which
// means the grammar and its consumer disagree.
func (n *Node) Child(i int) *Node {
	return n.Children[i]
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.Children) }

// IsTerminal reports whether n wraps a token.
func (n *Node) IsTerminal() bool { return n.Kind == Terminal }

// Desc names the statement kinds for error messages; it is empty for
// every other rule.
func (n *Node) Desc() string {
	switch n.Kind {
	case Instruction:
		return "instruction statement"
	case ResDirective:
		return "reserve directive"
	case ImportDirective:
		return "import directive"
	case ExportDirective:
		return "export directive"
	case StartDirective:
		return "start directive"
	case LabelDirective:
		return "label directive"
	case Macro:
		return "macro statement"
	}
	return ""
}

// String renders the subtree as an S-expression, e.g.
//
//	(LabelDirective (LabelDefinition (AutoScopePrefix) Identifier:"outer") Punctuation:":")
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.IsTerminal() {
		b.WriteString(n.Token.Kind.String())
		b.WriteByte(':')
		b.WriteString(strconv.Quote(n.Token.Lexeme))
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}
