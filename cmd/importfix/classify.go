package main

import (
	"path/filepath"

	"importfix/internal/classify"
	ckerrors "importfix/internal/errors"
	"importfix/internal/paths"
	"importfix/internal/report"

	"github.com/spf13/cobra"
)

var (
	classifyProject projectFlags
	classifyFormat  string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file> <specifier>...",
	Short: "Show the canonical form of specifiers as seen from a file",
	Long: `Classifies each specifier as if it were imported from file. The file
does not need to exist.

Examples:
  importfix classify src/a/b.ts src/c/d ../fs/promises ./sibling`,
	Args: cobra.MinimumNArgs(2),
	RunE: runClassify,
}

func init() {
	classifyProject.register(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "human", "Output format (json, yaml, toml, human)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(classifyFormat)
	if err != nil {
		return err
	}

	cfg, err := loadProject(cmd, &classifyProject)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	file, err := filepath.Abs(args[0])
	if err != nil {
		return ckerrors.New(ckerrors.InternalError, "Failed to resolve file path", err)
	}

	deps, builtins := loadDependencies(cfg, logger)
	classifier := classify.New(classify.Options{
		ProjectRoot:  cfg.ProjectRoot,
		RootMarker:   cfg.RootMarker,
		Builtins:     builtins,
		Dependencies: deps,
	})

	rel, err := paths.CanonicalizePath(file, cfg.ProjectRoot)
	if err != nil {
		rel = filepath.ToSlash(file)
	}

	return report.Write(cmd.OutOrStdout(), &report.Classification{
		File:    rel,
		Results: classifier.ClassifyAll(args[1:], file),
	}, format)
}
