package frontend_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"asmfront/pkg/frontend"
	"asmfront/pkg/lexer"
	"asmfront/pkg/sema"
)

func TestProcessStages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stage string
		line  int
	}{
		{name: "Success", input: "outer:\n.res >inner .byte\n"},
		{name: "Lexer", input: "nop\n@", stage: "lexer", line: 2},
		{name: "Parser", input: "nop\n\nmov r0 x", stage: "parser", line: 3},
		{name: "Sema", input: "a:\n.res >>b .byte\n", stage: "sema", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := frontend.Process(frontend.Source{Name: "t.asm", Text: tt.input}, frontend.Options{})
			if tt.stage == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if u.File == nil || u.CST == nil || len(u.Tokens) == 0 {
					t.Errorf("incomplete unit: %+v", u)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if got := frontend.Stage(err); got != tt.stage {
				t.Errorf("Stage() = %q, want %q", got, tt.stage)
			}
			if line, ok := frontend.Line(err); !ok || line != tt.line {
				t.Errorf("Line() = %d, %v, want %d", line, ok, tt.line)
			}
			if !strings.HasPrefix(err.Error(), "t.asm: *** ") {
				t.Errorf("Error() = %q, want source name prefix", err.Error())
			}
		})
	}
}

func TestProcessCauseIsStageError(t *testing.T) {
	_, err := frontend.Process(frontend.Source{Name: "t.asm", Text: `"open`}, frontend.Options{})
	lerr, ok := errors.Cause(err).(*lexer.Error)
	if !ok {
		t.Fatalf("Cause = %T, want *lexer.Error", errors.Cause(err))
	}
	if lerr.Kind != lexer.UnterminatedString {
		t.Errorf("Kind = %v", lerr.Kind)
	}
	if frontend.Desc(err) != lerr.Desc() {
		t.Errorf("Desc() = %q", frontend.Desc(err))
	}
}

func TestProcessLogsStages(t *testing.T) {
	var buf bytes.Buffer
	opts := frontend.Options{Logger: log.New(&buf, "", 0)}
	if _, err := frontend.Process(frontend.Source{Name: "log.asm", Text: "nop\n"}, opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"log.asm: *** Starting lexical analysis.",
		"log.asm: *** Lexer success (3 tokens",
		"log.asm: *** Syntactic analysis success",
		"log.asm: *** Semantic analysis success (1 statements",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log is missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	frontend.Process(frontend.Source{Name: "log.asm", Text: "}"}, opts)
	if strings.Contains(buf.String(), "Syntactic analysis success") {
		t.Errorf("failed parse logged success:\n%s", buf.String())
	}
}

func TestProcessAll(t *testing.T) {
	var srcs []frontend.Source
	for i := 0; i < 20; i++ {
		text := fmt.Sprintf("f%d:\n.res >x .bytes #%d\n", i, i+1)
		if i%5 == 0 {
			text = ">bad:\n"
		}
		srcs = append(srcs, frontend.Source{Name: fmt.Sprintf("f%d.asm", i), Text: text})
	}

	for _, jobs := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			reports, err := frontend.ProcessAll(context.Background(), srcs, jobs, frontend.Options{})
			if err != nil {
				t.Fatal(err)
			}
			if len(reports) != len(srcs) {
				t.Fatalf("got %d reports, want %d", len(reports), len(srcs))
			}
			for i, r := range reports {
				if r.Source.Name != srcs[i].Name {
					t.Errorf("report %d is for %s", i, r.Source.Name)
				}
				if i%5 == 0 {
					if frontend.Stage(r.Err) != "sema" {
						t.Errorf("%s: err = %v, want sema error", r.Source.Name, r.Err)
					}
					continue
				}
				if r.Err != nil {
					t.Errorf("%s: %v", r.Source.Name, r.Err)
					continue
				}
				syms := sema.Symbols(r.Unit.File)
				if want := fmt.Sprintf("f%d>x", i); syms[1].Name != want {
					t.Errorf("%s: symbol %q, want %q", r.Source.Name, syms[1].Name, want)
				}
			}
		})
	}
}

func TestProcessAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srcs := []frontend.Source{{Name: "a.asm", Text: "nop"}}
	if _, err := frontend.ProcessAll(ctx, srcs, 1, frontend.Options{}); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "First Line",
			input: "@\nnop",
			want:  "*** LEXER ERROR [LINE 1]: Unknown character found: '@'\n\n   1 > @\n   2 | nop\n",
		},
		{
			name:  "Last Line",
			input: "nop\n>x:",
			want:  "*** SEMA ERROR [LINE 2]: Auto nesting too deep.\n\n   1 | nop\n   2 > >x:\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := frontend.Process(frontend.Source{Name: "s.asm", Text: tt.input}, frontend.Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := frontend.Snippet(err, tt.input); got != tt.want {
				t.Errorf("Snippet() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}

	plain := errors.New("boom")
	if got := frontend.Snippet(plain, "nop"); got != "boom" {
		t.Errorf("Snippet(plain) = %q", got)
	}
}
