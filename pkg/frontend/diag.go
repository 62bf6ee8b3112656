package frontend

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"asmfront/pkg/lexer"
	"asmfront/pkg/parser"
	"asmfront/pkg/sema"
)

// Stage names the pipeline stage that produced err: "lexer", "parser",
// "sema", or "" for anything else.
func Stage(err error) string {
	switch errors.Cause(err).(type) {
	case *lexer.Error:
		return "lexer"
	case *parser.Error:
		return "parser"
	case *sema.Error:
		return "sema"
	}
	return ""
}

// Line returns the source line a stage error points at.
func Line(err error) (int, bool) {
	if l, ok := errors.Cause(err).(interface{ Line() int }); ok {
		return l.Line(), true
	}
	return 0, false
}

// Desc returns the stage's own description of err, without the source name
// added by Process.
func Desc(err error) string {
	if d, ok := errors.Cause(err).(interface{ Desc() string }); ok {
		return d.Desc()
	}
	return err.Error()
}

// Snippet renders err followed by the offending line of src and one line of
// context on each side. Errors without a line are returned as is.
//
//	*** PARSER ERROR [LINE 2]: Expected : after a label directive.
//
//	   1 | nop
//	   2 > foo
//	   3 | ret
func Snippet(err error, src string) string {
	line, ok := Line(err)
	if !ok {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Desc(err))
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d > %s\n", line, lines[line-1])
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
