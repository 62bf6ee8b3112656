package sema

import (
	"fmt"
	"strings"
)

// File is the IR of one source file.
type File struct {
	Statements []Statement
}

// Statement is implemented by every top-level IR node.
type Statement interface {
	statementNode()
	Line() int
}

// Pos records the source line a statement starts on.
type Pos struct {
	SourceLine int
}

func (p Pos) Line() int { return p.SourceLine }

//  Labels

// LabelDefinition names a label where it is introduced.
//
//	.res >>buf .byte
//	     ^^^^^  LabelDefinition{PrefixCount: 2, Label: "buf"}
type LabelDefinition struct {
	PrefixCount int
	Label       string
	Resolved    string // empty until Resolve runs
}

// LabelAccess refers to a label from inside the file.
//
//	!jump $>loop>end
//	      ^^^^^^^^^^  LabelAccess{PrefixCount: 1, Scopes: ["loop"], Label: "end"}
type LabelAccess struct {
	PrefixCount int
	Scopes      []string
	Label       string
	Resolved    string
}

// LabelExternal is the name a label has outside the file. It is never
// qualified by the scope stack.
//
//	.import puts (libc>io>puts)
//	             ^^^^^^^^^^^^^^  LabelExternal{Scopes: ["libc", "io"], Label: "puts"}
type LabelExternal struct {
	Scopes   []string
	Label    string
	Resolved string
}

//  Data types

// DataType is the type of a .res reservation.
type DataType interface {
	dataTypeNode()
	// Size is the number of bytes the type occupies.
	Size() uint64
	String() string
}

// Byte is a single byte (.byte).
type Byte struct{}

// Bytes is one element of ElementSize bytes (.bytes #n).
type Bytes struct {
	ElementSize uint32
}

// Arr is Count elements of Elem (.arr #n <type>).
type Arr struct {
	Count uint32
	Elem  DataType
}

func (Byte) dataTypeNode()  {}
func (Bytes) dataTypeNode() {}
func (Arr) dataTypeNode()   {}

func (Byte) Size() uint64    { return 1 }
func (b Bytes) Size() uint64 { return uint64(b.ElementSize) }
func (a Arr) Size() uint64   { return uint64(a.Count) * a.Elem.Size() }

func (Byte) String() string    { return ".byte" }
func (b Bytes) String() string { return fmt.Sprintf(".bytes %d", b.ElementSize) }
func (a Arr) String() string   { return fmt.Sprintf(".arr %d %s", a.Count, a.Elem) }

//  Initializers

// RepeatMode tells how an assignment list is repeated over its reservation.
type RepeatMode int

const (
	// RepeatOnce: no '*' was written. Repetition is 1.
	RepeatOnce RepeatMode = iota
	// RepeatFill: a bare '*' fills the whole reservation. Repetition is 0.
	RepeatFill
	// RepeatCount: '* #n' repeats the list n times. Repetition is n.
	RepeatCount
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOnce:
		return "once"
	case RepeatFill:
		return "fill"
	case RepeatCount:
		return "count"
	}
	return fmt.Sprintf("RepeatMode(%d)", int(m))
}

// Assignment is a brace-delimited initializer list.
//
//	{ #1 { #2 #3 } * #4 } *
//	                      ^  Repeat: RepeatFill
type Assignment struct {
	Values     []AssignmentValue
	Repetition uint32
	Repeat     RepeatMode
}

// AssignmentValue is one element of an initializer list: a NumberValue, a
// StringValue or a nested *Assignment.
type AssignmentValue interface {
	assignmentValueNode()
}

type NumberValue int32

// StringValue holds the characters between the quotes. No escapes are
// interpreted.
type StringValue []rune

func (NumberValue) assignmentValueNode() {}
func (StringValue) assignmentValueNode() {}
func (*Assignment) assignmentValueNode() {}

//  Arguments

// InstructionArg is an operand of a machine instruction.
type InstructionArg interface {
	instructionArg()
}

// MacroArg is an operand of a macro. Label operands are *LabelAccess.
type MacroArg interface {
	macroArg()
}

type RegisterArg string
type LongRegisterArg string
type SystemRegisterArg string
type PortArg string
type NumberArg int32
type StringArg []rune

func (RegisterArg) instructionArg()       {}
func (LongRegisterArg) instructionArg()   {}
func (SystemRegisterArg) instructionArg() {}
func (PortArg) instructionArg()           {}
func (NumberArg) instructionArg()         {}
func (StringArg) instructionArg()         {}

func (RegisterArg) macroArg()     {}
func (LongRegisterArg) macroArg() {}
func (NumberArg) macroArg()       {}
func (*LabelAccess) macroArg()    {}

//  Statements

// ImportDirective binds an external label to a local definition.
//
//	.import puts (libc>puts)
type ImportDirective struct {
	Pos
	LabelIntern LabelDefinition
	LabelExtern LabelExternal
}

// ExportDirective publishes a local label under an external name.
//
//	.export $main (entry)
type ExportDirective struct {
	Pos
	LabelIntern LabelAccess
	LabelExtern LabelExternal
}

// ResDirective reserves storage, optionally initialised.
//
//	.res buf .arr #4 .byte { #0 } *
type ResDirective struct {
	Pos
	Label      LabelDefinition
	DataType   DataType
	Assignment *Assignment // nil when no initializer was written
}

// LabelDirective is a colon-terminated label. It opens a scope.
//
//	loop:
type LabelDirective struct {
	Pos
	Label LabelDefinition
}

// StartDirective marks the entry point (.start:).
type StartDirective struct {
	Pos
}

// Instruction is a machine instruction with its operands.
//
//	add:nz r0 #1
type Instruction struct {
	Pos
	Mnemonic  string
	Condition string // empty when unconditional
	Args      []InstructionArg
}

// Macro is a macro invocation with its operands.
//
//	!jump:z $>done
type Macro struct {
	Pos
	Mnemonic  string
	Condition string
	Args      []MacroArg
}

func (*ImportDirective) statementNode() {}
func (*ExportDirective) statementNode() {}
func (*ResDirective) statementNode()    {}
func (*LabelDirective) statementNode()  {}
func (*StartDirective) statementNode()  {}
func (*Instruction) statementNode()     {}
func (*Macro) statementNode()           {}

// Separator joins scope names in a resolved label.
const Separator = ">"

func joinLabel(scopes []string, label string) string {
	if len(scopes) == 0 {
		return label
	}
	return strings.Join(scopes, Separator) + Separator + label
}
