package main

import (
	"fmt"
	"os"
	"path/filepath"

	"importfix/internal/config"
	ckerrors "importfix/internal/errors"

	"github.com/spf13/cobra"
)

var (
	initForce bool
	initRoot  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .importfix.toml",
	Long:  "Creates .importfix.toml with default settings in the project root",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing .importfix.toml")
	initCmd.Flags().StringVar(&initRoot, "root", "", "Project root (default: current directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := initRoot
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ckerrors.New(ckerrors.InternalError, "Failed to get current directory", err)
		}
		dir = cwd
	}

	out := cmd.OutOrStdout()
	configPath := filepath.Join(dir, config.FileName)

	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		// Already initialized is success
		fmt.Fprintln(out, "importfix already initialized.")
		fmt.Fprintf(out, "Configuration at: %s\n", configPath)
		fmt.Fprintln(out, "\nRun 'importfix init --force' to overwrite it.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		return ckerrors.ForFile(ckerrors.FileIOFailed, configPath, err)
	}

	fmt.Fprintln(out, "importfix initialized successfully!")
	fmt.Fprintf(out, "Configuration written to: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'importfix check' to see which imports would change")
	fmt.Fprintln(out, "  2. Run 'importfix convert' to rewrite them")
	return nil
}
