package lexer

import "sort"

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

var instructionNames = set(
	"nop", "hlt",
	"mov", "ld", "st", "ldi",
	"add", "adc", "sub", "sbc",
	"and", "or", "xor", "not", "shl", "shr",
	"cmp", "jmp", "call", "ret",
	"push", "pop",
	"in", "out",
)

var registerNames = set("r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7")

// Long registers name the even-aligned register pairs.
var longRegisterNames = set("rx0", "rx2", "rx4", "rx6")

var systemRegisterNames = set("sp", "pc", "fl")

var portNames = set("p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7")

var conditionCodeNames = set("z", "nz", "c", "nc", "n", "nn", "v", "nv")

var directiveNames = set(".res", ".byte", ".bytes", ".arr", ".start", ".import", ".export")

var macroNames = set("!load", "!store", "!jump", "!call", "!push", "!pop", "!addr")

func in(m map[string]struct{}, s string) bool {
	_, ok := m[s]
	return ok
}

func IsInstruction(s string) bool    { return in(instructionNames, s) }
func IsRegister(s string) bool       { return in(registerNames, s) }
func IsLongRegister(s string) bool   { return in(longRegisterNames, s) }
func IsSystemRegister(s string) bool { return in(systemRegisterNames, s) }
func IsPort(s string) bool           { return in(portNames, s) }
func IsConditionCode(s string) bool  { return in(conditionCodeNames, s) }
func IsDirective(s string) bool      { return in(directiveNames, s) }
func IsMacro(s string) bool          { return in(macroNames, s) }

// wordKind classifies a run of word characters. The first table that
// contains the lexeme wins.
func wordKind(lexeme string) TokenKind {
	switch {
	case IsInstruction(lexeme):
		return Instruction
	case IsRegister(lexeme):
		return Register
	case IsLongRegister(lexeme):
		return LongRegister
	case IsSystemRegister(lexeme):
		return SystemRegister
	case IsPort(lexeme):
		return Port
	case IsConditionCode(lexeme):
		return ConditionCode
	}
	return Identifier
}

// Vocabulary returns every reserved name known to the lexer, sorted.
func Vocabulary() []string {
	var out []string
	for _, m := range []map[string]struct{}{
		instructionNames, registerNames, longRegisterNames, systemRegisterNames,
		portNames, conditionCodeNames, directiveNames, macroNames,
	} {
		for n := range m {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
