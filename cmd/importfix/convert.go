package main

import (
	"errors"
	"fmt"

	"importfix/internal/report"

	"github.com/spf13/cobra"
)

var (
	convertProject  projectFlags
	convertDryRun   bool
	convertDiff     bool
	convertFailFast bool
	convertFormat   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Rewrite import specifiers into canonical form",
	Long: `Rewrites the static import and export specifiers of every matching file
under dir (default: <root>/<marker>). A relative dir is resolved against
<root>. Files are processed one at a time and replaced atomically; files
that fail to parse are left untouched.

Examples:
  importfix convert                       # rewrite everything under ./src
  importfix convert src/features --diff   # one subtree, print diffs
  importfix convert --dry-run --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertProject.register(convertCmd)
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Compute changes without writing files")
	convertCmd.Flags().BoolVar(&convertDiff, "diff", false, "Include unified diffs in the report")
	convertCmd.Flags().BoolVar(&convertFailFast, "fail-fast", false, "Stop at the first file that fails")
	convertCmd.Flags().StringVar(&convertFormat, "format", "human", "Output format (json, yaml, toml, human)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	summary, err := runWalk(cmd, args, &convertProject, convertFormat, walkMode{
		dryRun:   convertDryRun,
		diff:     convertDiff,
		failFast: convertFailFast,
	})
	if err != nil {
		return err
	}
	if summary.HasErrors() {
		return fmt.Errorf("%d file(s) could not be converted", summary.FilesFailed)
	}
	return nil
}

// runWalk loads the project, walks it and writes the report to stdout.
// The report is written even when the walk stops early.
func runWalk(cmd *cobra.Command, args []string, p *projectFlags, formatFlag string, mode walkMode) (*report.Summary, error) {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := loadProject(cmd, p)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	walker, err := newWalker(cfg, logger, mode)
	if err != nil {
		return nil, err
	}

	var dir string
	if len(args) > 0 {
		dir = args[0]
	}

	summary, runErr := walker.Run(cmd.Context(), dir)
	if summary != nil {
		if err := report.Write(cmd.OutOrStdout(), summary, format); err != nil {
			return nil, errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	return summary, nil
}
