package main

import (
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump sourceFile",
	Short: "Pretty-print the resolved IR of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		printer := pp.New()
		printer.SetColoringEnabled(!noColor)
		printer.SetOutput(cmd.OutOrStdout())
		_, err = printer.Println(u.File)
		return err
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
