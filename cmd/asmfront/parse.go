package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asmfront/pkg/lexer"
	"asmfront/pkg/parser"
	"asmfront/pkg/utils"
)

var parseCmd = &cobra.Command{
	Use:   "parse sourceFile",
	Short: "Print the concrete syntax tree of a source file",
	Long: `Parse tokenises and parses a source file and prints the concrete
syntax tree as an S-expression. Labels are not resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := utils.ReadSource(args[0])
		if err != nil {
			return err
		}
		tokens, err := lexer.Tokenise(src.Text)
		if err == nil {
			var root *parser.Node
			if root, err = parser.Parse(tokens); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), root)
				return nil
			}
		}
		report(cmd.ErrOrStderr(), src, err)
		return errReported{msg: err.Error()}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
