package frontend_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"asmfront/pkg/frontend"
	"asmfront/pkg/sema"
	"asmfront/pkg/utils"
)

// TestTestdata runs every program under testdata through the whole front end.
func TestTestdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.asm"))
	if err != nil {
		t.Fatal(err)
	}
	srcs, err := utils.ReadSources(paths)
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]struct {
		stage string
		line  int
	}{
		"ring.asm":        {},
		"bad_nesting.asm": {stage: "sema", line: 4},
		"bad_syntax.asm":  {stage: "parser", line: 3},
		"bad_token.asm":   {stage: "lexer", line: 2},
	}

	reports, err := frontend.ProcessAll(context.Background(), srcs, 2, frontend.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != len(expected) {
		t.Fatalf("got %d reports for %v, want %d", len(reports), paths, len(expected))
	}
	for _, r := range reports {
		name := filepath.Base(r.Source.Name)
		want, ok := expected[name]
		if !ok {
			t.Errorf("unexpected testdata file %s", name)
			continue
		}
		t.Run(name, func(t *testing.T) {
			if got := frontend.Stage(r.Err); got != want.stage {
				t.Fatalf("stage = %q, want %q (err: %v)", got, want.stage, r.Err)
			}
			if want.stage == "" {
				return
			}
			if line, _ := frontend.Line(r.Err); line != want.line {
				t.Errorf("line = %d, want %d\n%s", line, want.line, frontend.Snippet(r.Err, r.Source.Text))
			}
		})
	}
}

func TestRingSymbols(t *testing.T) {
	src, err := utils.ReadSource(filepath.Join("testdata", "ring.asm"))
	if err != nil {
		t.Fatal(err)
	}
	u, err := frontend.Process(src, frontend.Options{})
	if err != nil {
		t.Fatal(frontend.Snippet(err, src.Text))
	}

	var names []string
	defined := map[string]bool{}
	for _, s := range sema.Symbols(u.File) {
		names = append(names, s.Kind.String()+" "+s.Name)
		if s.Kind != sema.SymExport {
			defined[s.Name] = true
		}
	}
	want := []string{
		"import putc",
		"export ring>put",
		"export ring>take",
		"label main",
		"label main>loop",
		"label ring",
		"res ring>buf",
		"res ring>head",
		"res ring>tail",
		"res ring>name",
		"label ring>put",
		"label ring>take",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("symbols:\n got %v\nwant %v", names, want)
	}

	// Every label a macro refers to is defined somewhere in the file.
	for _, st := range u.File.Statements {
		m, ok := st.(*sema.Macro)
		if !ok {
			continue
		}
		for _, a := range m.Args {
			if acc, ok := a.(*sema.LabelAccess); ok && !defined[acc.Resolved] {
				t.Errorf("line %d: %s refers to undefined %q", m.Line(), m.Mnemonic, acc.Resolved)
			}
		}
	}
}
