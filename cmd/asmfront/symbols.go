package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asmfront/pkg/sema"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols sourceFile",
	Short: "List the resolved labels a source file defines, imports and exports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		for _, s := range sema.Symbols(u.File) {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}
