package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errChangesPending makes `check` exit non-zero without an error log.
var errChangesPending = errors.New("imports are not canonical")

var (
	checkProject projectFlags
	checkDiff    bool
	checkFormat  string
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Report files whose imports are not canonical",
	Long: `Performs a dry run of convert and exits with status 1 when any file
would change. Nothing is written.

Examples:
  importfix check           # CI gate
  importfix check --diff    # show what convert would do`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkProject.register(checkCmd)
	checkCmd.Flags().BoolVar(&checkDiff, "diff", false, "Include unified diffs in the report")
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format (json, yaml, toml, human)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	summary, err := runWalk(cmd, args, &checkProject, checkFormat, walkMode{
		dryRun: true,
		diff:   checkDiff,
	})
	if err != nil {
		return err
	}
	if summary.HasErrors() {
		return fmt.Errorf("%d file(s) could not be checked", summary.FilesFailed)
	}
	if summary.HasChanges() {
		return errChangesPending
	}
	return nil
}
