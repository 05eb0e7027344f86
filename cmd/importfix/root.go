package main

import (
	"importfix/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configFlag is the CLI --config flag value
	configFlag   string
	logLevelFlag string
	logFileFlag  string
	verboseFlag  int
	quietFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "importfix",
	Short: "importfix - canonicalize JavaScript/TypeScript import paths",
	Long: `importfix rewrites the module specifiers of static import and export
declarations into one canonical form: bare package names for dependencies and
platform built-ins, and relative paths for project files imported through the
root marker directory (src by default).`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("importfix version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: .importfix.{toml,yaml,json} in the project root)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (overrides -v/-q and config)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "",
		"Also append logs to this file")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"Increase verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress all log output")
}
