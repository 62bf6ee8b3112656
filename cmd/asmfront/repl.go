package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"asmfront/pkg/frontend"
	"asmfront/pkg/lexer"
	"asmfront/pkg/sema"
)

const (
	replPrompt = "asm> "
	replName   = "<repl>"
)

var historyPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Enter statements interactively",
	Long: `Repl reads one statement per line. Each line is appended to the
session and the whole session is run through the front end again; a line
that makes the session fail is reported and dropped.

Commands:
	:tokens  print the tokens of the session
	:reset   start an empty session
	:quit    leave`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)
		ln.SetCompleter(complete)

		if historyPath != "" {
			if f, err := os.Open(historyPath); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(historyPath); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()
		}

		s := &session{opts: options(cmd)}
		for {
			line, err := ln.Prompt(replPrompt)
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "prompt")
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			ln.AppendHistory(line)
			if !s.handle(cmd.OutOrStdout(), line) {
				return nil
			}
		}
	},
}

func init() {
	replCmd.Flags().StringVar(&historyPath, "history", "", "file to load and save the line history")
	rootCmd.AddCommand(replCmd)
}

// session is the program entered so far. Only lines that leave it valid
// are kept.
type session struct {
	lines []string
	unit  *frontend.Unit
	opts  frontend.Options
}

// with returns the session text with line appended.
func (s *session) with(line string) string {
	var b strings.Builder
	for _, l := range s.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(line)
	b.WriteByte('\n')
	return b.String()
}

// eval keeps line if the session still passes every stage with it.
func (s *session) eval(line string) (*frontend.Unit, error) {
	u, err := frontend.Process(frontend.Source{Name: replName, Text: s.with(line)}, s.opts)
	if err != nil {
		return nil, err
	}
	s.lines = append(s.lines, line)
	s.unit = u
	return u, nil
}

func (s *session) reset() {
	s.lines, s.unit = nil, nil
}

// handle runs one input line and reports to w. It returns false when the
// user asked to leave.
func (s *session) handle(w io.Writer, line string) bool {
	if cmdName := strings.TrimSpace(line); strings.HasPrefix(cmdName, ":") {
		switch cmdName {
		case ":quit":
			return false
		case ":reset":
			s.reset()
			fmt.Fprintln(w, green("session cleared"))
		case ":tokens":
			if s.unit != nil {
				for _, t := range s.unit.Tokens {
					fmt.Fprintln(w, t)
				}
			}
		default:
			fmt.Fprintf(w, "unknown command %s. Commands are :tokens, :reset and :quit.\n", cmdName)
		}
		return true
	}

	before := 0
	if s.unit != nil {
		before = len(sema.Symbols(s.unit.File))
	}
	u, err := s.eval(line)
	if err != nil {
		fmt.Fprint(w, red(frontend.Snippet(err, s.with(line))))
		return true
	}
	syms := sema.Symbols(u.File)
	fmt.Fprintln(w, green("ok"))
	for _, sym := range syms[before:] {
		fmt.Fprintln(w, sym)
	}
	return true
}

// complete offers the reserved names that start with the last word of line.
func complete(line string) []string {
	i := strings.LastIndexAny(line, " \t") + 1
	head, word := line[:i], line[i:]
	if word == "" {
		return nil
	}
	var out []string
	for _, name := range lexer.Vocabulary() {
		if strings.HasPrefix(name, word) {
			out = append(out, head+name)
		}
	}
	return out
}
