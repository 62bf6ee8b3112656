// Command asmfront runs assembly sources through the front end and shows
// what each stage produced.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"asmfront/pkg/frontend"
	"asmfront/pkg/utils"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "asmfront",
	Short: "Lex, parse and check assembly sources",
	Long: `Asmfront is the front end of the assembler. It tokenises a source
file, parses it into a concrete syntax tree, builds the statement IR and
qualifies every label with the scopes open where it appears.

Each subcommand stops after the stage it is named for and prints that
stage's result. Errors are reported as

	*** <STAGE> ERROR [LINE n]: message

followed by the offending source line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each stage with its timing on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func red(s string) string   { return paint("\x1b[31m", s) }
func green(s string) string { return paint("\x1b[32m", s) }

func paint(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\x1b[0m"
}

// options builds the pipeline options for cmd from the global flags.
func options(cmd *cobra.Command) frontend.Options {
	if !verbose {
		return frontend.Options{}
	}
	return frontend.Options{Logger: log.New(cmd.ErrOrStderr(), "", log.Ltime|log.Lmicroseconds)}
}

// errReported is returned by commands that already printed their
// diagnostics, so main only sets the exit status.
type errReported struct{ msg string }

func (e errReported) Error() string { return e.msg }

// load reads path and runs the whole pipeline over it. A pipeline error is
// printed as a snippet to w.
func load(cmd *cobra.Command, path string) (*frontend.Unit, error) {
	src, err := utils.ReadSource(path)
	if err != nil {
		return nil, err
	}
	u, err := frontend.Process(src, options(cmd))
	if err != nil {
		report(cmd.ErrOrStderr(), src, err)
		return nil, errReported{msg: err.Error()}
	}
	return u, nil
}

func report(w io.Writer, src frontend.Source, err error) {
	fmt.Fprintf(w, "%s: %s", src.Name, red(frontend.Snippet(err, src.Text)))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(errReported); !ok {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		os.Exit(1)
	}
}
