package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"asmfront/pkg/frontend"
	"asmfront/pkg/utils"
)

var jobs int

var checkCmd = &cobra.Command{
	Use:   "check sourceFile...",
	Short: "Run the whole front end over one or more files",
	Long: `Check runs every stage over each file, several files at a time, and
prints one status line per file. It exits with status 1 if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcs, err := utils.ReadSources(args)
		if err != nil {
			return err
		}
		reports, err := frontend.ProcessAll(cmd.Context(), srcs, jobs, options(cmd))
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range reports {
			if r.Err != nil {
				failed++
				report(cmd.OutOrStdout(), r.Source, r.Err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d statements, %v)\n",
				green("ok"), r.Source.Name, len(r.Unit.File.Statements), r.Unit.Elapsed)
		}
		if failed > 0 {
			return errReported{msg: fmt.Sprintf("%d of %d files failed", failed, len(reports))}
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files to process in parallel")
	rootCmd.AddCommand(checkCmd)
}
