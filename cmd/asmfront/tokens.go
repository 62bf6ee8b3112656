package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asmfront/pkg/lexer"
	"asmfront/pkg/utils"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens sourceFile",
	Short: "Print the tokens of a source file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := utils.ReadSource(args[0])
		if err != nil {
			return err
		}
		tokens, err := lexer.Tokenise(src.Text)
		if err != nil {
			report(cmd.ErrOrStderr(), src, err)
			return errReported{msg: err.Error()}
		}
		printTokens(cmd, tokens)
		return nil
	},
}

func printTokens(cmd *cobra.Command, tokens []lexer.Token) {
	w := cmd.OutOrStdout()
	for _, t := range tokens {
		fmt.Fprintln(w, t)
	}
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
