package sema

import "fmt"

// SymbolKind tells which statement introduced a symbol.
type SymbolKind int

const (
	SymLabel SymbolKind = iota
	SymReservation
	SymImport
	SymExport
)

func (k SymbolKind) String() string {
	switch k {
	case SymLabel:
		return "label"
	case SymReservation:
		return "res"
	case SymImport:
		return "import"
	case SymExport:
		return "export"
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// Symbol is one entry of a file's symbol listing.
type Symbol struct {
	Name     string // resolved local name
	Kind     SymbolKind
	Line     int
	External string   // external name, imports and exports only
	Type     DataType // reservations only
}

func (s Symbol) String() string {
	switch s.Kind {
	case SymReservation:
		return fmt.Sprintf("%-7s %-24s %s (%d bytes)  line %d", s.Kind, s.Name, s.Type, s.Type.Size(), s.Line)
	case SymImport, SymExport:
		return fmt.Sprintf("%-7s %-24s (%s)  line %d", s.Kind, s.Name, s.External, s.Line)
	}
	return fmt.Sprintf("%-7s %-24s line %d", s.Kind, s.Name, s.Line)
}

// Symbols lists the labels f defines, imports and exports, in source order.
// f should have been resolved.
func Symbols(f *File) []Symbol {
	var syms []Symbol
	for _, s := range f.Statements {
		switch s := s.(type) {
		case *LabelDirective:
			syms = append(syms, Symbol{Name: s.Label.Resolved, Kind: SymLabel, Line: s.Line()})
		case *ResDirective:
			syms = append(syms, Symbol{Name: s.Label.Resolved, Kind: SymReservation, Line: s.Line(), Type: s.DataType})
		case *ImportDirective:
			syms = append(syms, Symbol{Name: s.LabelIntern.Resolved, Kind: SymImport, Line: s.Line(), External: s.LabelExtern.Resolved})
		case *ExportDirective:
			syms = append(syms, Symbol{Name: s.LabelIntern.Resolved, Kind: SymExport, Line: s.Line(), External: s.LabelExtern.Resolved})
		}
	}
	return syms
}
