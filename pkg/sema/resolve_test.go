package sema

import (
	"reflect"
	"testing"
)

func resolve(t *testing.T, src string) *File {
	t.Helper()
	f := build(t, src)
	if err := Resolve(f); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return f
}

func TestResolveNestedScope(t *testing.T) {
	f := resolve(t, "outer:\n.res >inner .byte\n")

	if got := f.Statements[0].(*LabelDirective).Label.Resolved; got != "outer" {
		t.Errorf("label directive = %q, want outer", got)
	}
	if got := f.Statements[1].(*ResDirective).Label.Resolved; got != "outer>inner" {
		t.Errorf("reservation = %q, want outer>inner", got)
	}
}

func TestResolve(t *testing.T) {
	src := `outer:
>inner:
>>leaf:
.res >>>x .byte
>sibling:
!jump $>>done $other>y $>k>zz r0 #1
top:
.export $>a (ext>a)
.import >b (lib>b)
mov r0 r1
.start:
`
	f := resolve(t, src)

	var got []string
	for _, s := range f.Statements {
		switch s := s.(type) {
		case *LabelDirective:
			got = append(got, s.Label.Resolved)
		case *ResDirective:
			got = append(got, s.Label.Resolved)
		case *Macro:
			for _, a := range s.Args {
				if acc, ok := a.(*LabelAccess); ok {
					got = append(got, acc.Resolved)
				}
			}
		case *ExportDirective:
			got = append(got, s.LabelIntern.Resolved, s.LabelExtern.Resolved)
		case *ImportDirective:
			got = append(got, s.LabelIntern.Resolved, s.LabelExtern.Resolved)
		}
	}

	want := []string{
		"outer",
		"outer>inner",
		"outer>inner>leaf",
		"outer>inner>leaf>x",
		"outer>sibling",
		"outer>sibling>done", "other>y", "outer>k>zz",
		"top",
		"top>a", "ext>a",
		"top>b", "lib>b",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resolved names:\n got %v\nwant %v", got, want)
	}

	m := f.Statements[5].(*Macro)
	if m.Args[3] != RegisterArg("r0") || m.Args[4] != NumberArg(1) {
		t.Errorf("non-label macro arguments changed: %v", m.Args[3:])
	}
}

func TestScopeStackAfterLabelDirective(t *testing.T) {
	f := build(t, "a:\n>b:\n>>c1:\n>d:\ne:\n>f:\n")
	r := &resolver{}
	for _, s := range f.Statements {
		if err := r.statement(s); err != nil {
			t.Fatal(err)
		}
		ld := s.(*LabelDirective)
		p := ld.Label.PrefixCount
		if len(r.scopes) != p+1 {
			t.Fatalf("after %q stack depth = %d, want %d", ld.Label.Label, len(r.scopes), p+1)
		}
		if top := r.scopes[len(r.scopes)-1]; top != ld.Label.Label {
			t.Errorf("after %q top of stack = %q", ld.Label.Label, top)
		}
	}
	if !reflect.DeepEqual(r.scopes, []string{"e", "f"}) {
		t.Errorf("final stack = %v, want [e f]", r.scopes)
	}
}

func TestResolveNestingTooDeep(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"Label At Top", ">x:", 1},
		{"Reservation", "a:\n.res >>b .byte", 2},
		{"Macro Argument", "a:\nnop\n!load r0 $>>b", 3},
		{"Export", ".export $>x (y)", 1},
		{"Import", ".import >x (y)", 1},
		{"After Unnest", "a:\n>b:\ncc:\n.res >>d .byte", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := build(t, tt.input)
			err := Resolve(f)
			if err == nil {
				t.Fatal("expected error")
			}
			serr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *Error, got %T", err)
			}
			if serr.Msg != ErrNestingTooDeep {
				t.Errorf("Msg = %q", serr.Msg)
			}
			if serr.Line() != tt.line {
				t.Errorf("Line() = %d, want %d", serr.Line(), tt.line)
			}
			want := "*** SEMA ERROR [LINE " + string(rune('0'+tt.line)) + "]: Auto nesting too deep."
			if serr.Error() != want {
				t.Errorf("Error() = %q, want %q", serr.Error(), want)
			}
		})
	}
}

func TestResolveStopsAtFirstError(t *testing.T) {
	f := build(t, ".res >x .byte\ny:\n")
	if err := Resolve(f); err == nil {
		t.Fatal("expected error")
	}
	if got := f.Statements[1].(*LabelDirective).Label.Resolved; got != "" {
		t.Errorf("statement after the error was resolved to %q", got)
	}
}

func TestSymbols(t *testing.T) {
	f := resolve(t, "main:\n.res >buf .arr #4 .byte\n.import >puts (libc>puts)\n.export $main (entry)\nnop\n")

	want := []Symbol{
		{Name: "main", Kind: SymLabel, Line: 1},
		{Name: "main>buf", Kind: SymReservation, Line: 2, Type: Arr{Count: 4, Elem: Byte{}}},
		{Name: "main>puts", Kind: SymImport, Line: 3, External: "libc>puts"},
		{Name: "main", Kind: SymExport, Line: 4, External: "entry"},
	}
	got := Symbols(f)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Symbols() =\n%v\nwant\n%v", got, want)
	}

	if s := got[1].String(); s != "res     main>buf                 .arr 4 .byte (4 bytes)  line 2" {
		t.Errorf("String() = %q", s)
	}
}
