package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"importfix/internal/classify"
	"importfix/internal/config"
	ckerrors "importfix/internal/errors"
	"importfix/internal/imports"
	"importfix/internal/manifest"
	"importfix/internal/slogutil"
	"importfix/internal/traverse"

	"github.com/spf13/cobra"
)

// projectFlags are the configuration flags shared by commands that operate on
// a project. Only flags set on the command line override the config file.
type projectFlags struct {
	root         string
	marker       string
	manifest     string
	extensions   []string
	excludeDirs  []string
	excludeGlobs []string
	builtins     []string
	maxFileSize  string
}

func (p *projectFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.root, "root", "", "Project root (default: current directory)")
	f.StringVar(&p.marker, "marker", "", "Root marker directory that absolute imports are relative to (default: src)")
	f.StringVar(&p.manifest, "manifest", "", "Path to package.json (default: <root>/package.json)")
	f.StringSliceVar(&p.extensions, "ext", nil, "File extensions to process (default: .ts,.tsx,.js,.jsx)")
	f.StringSliceVar(&p.excludeDirs, "exclude", nil, "Directory names to skip (default: node_modules,dist)")
	f.StringSliceVar(&p.excludeGlobs, "exclude-glob", nil, "Glob patterns to skip, relative to the project root")
	f.StringSliceVar(&p.builtins, "builtin", nil, "Extra module names to treat as packages")
	f.StringVar(&p.maxFileSize, "max-file-size", "", "Skip files larger than this size, e.g. 1MB (0 for no limit)")
}

// overrides maps explicitly set flags to config keys.
func (p *projectFlags) overrides(cmd *cobra.Command) (map[string]any, error) {
	o := make(map[string]any)
	f := cmd.Flags()

	if f.Changed("root") {
		root, err := filepath.Abs(p.root)
		if err != nil {
			return nil, err
		}
		o["projectRoot"] = root
	}
	if f.Changed("marker") {
		o["rootMarker"] = p.marker
	}
	if f.Changed("manifest") {
		manifestPath, err := filepath.Abs(p.manifest)
		if err != nil {
			return nil, err
		}
		o["manifest"] = manifestPath
	}
	if f.Changed("ext") {
		o["extensions"] = p.extensions
	}
	if f.Changed("exclude") {
		o["excludeDirs"] = p.excludeDirs
	}
	if f.Changed("exclude-glob") {
		o["excludeGlobs"] = p.excludeGlobs
	}
	if f.Changed("builtin") {
		o["extraBuiltins"] = p.builtins
	}
	if f.Changed("max-file-size") {
		o["maxFileSize"] = p.maxFileSize
	}
	return o, nil
}

// loadProject resolves and validates the configuration.
// Precedence: CLI flag > IMPORTFIX_* env var > config file > defaults
func loadProject(cmd *cobra.Command, p *projectFlags) (*config.Config, error) {
	overrides, err := p.overrides(cmd)
	if err != nil {
		return nil, ckerrors.New(ckerrors.ConfigInvalid, "Failed to resolve paths", err)
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, ckerrors.New(ckerrors.InternalError, "Failed to get current directory", err)
	}
	if root, ok := overrides["projectRoot"].(string); ok {
		dir = root
	}

	cfg, err := config.LoadConfig(dir, configFlag, overrides)
	if err != nil {
		return nil, ckerrors.New(ckerrors.ConfigInvalid, "Failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, ckerrors.New(ckerrors.ConfigInvalid, "Invalid configuration", err)
	}
	return cfg, nil
}

// resolveLogLevel picks the log level.
// Precedence: --log-level > -v/-q > config logging.level
func resolveLogLevel(cfg *config.Config) slog.Level {
	if logLevelFlag != "" {
		return slogutil.LevelFromString(logLevelFlag)
	}
	if verboseFlag > 0 || quietFlag {
		return slogutil.LevelFromVerbosity(verboseFlag, quietFlag)
	}
	return slogutil.LevelFromString(cfg.Logging.Level)
}

// newLogger creates the command logger on w, teeing to --log-file when set.
// The returned func closes the log file.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, func(), error) {
	level := resolveLogLevel(cfg)
	handler := slogutil.NewFormatHandler(w, cfg.Logging.Format, level)

	if logFileFlag == "" {
		return slog.New(handler), func() {}, nil
	}

	fileHandler, f, err := slogutil.NewFileHandler(logFileFlag, cfg.Logging.Format, level)
	if err != nil {
		return nil, nil, ckerrors.ForFile(ckerrors.FileIOFailed, logFileFlag, err)
	}
	return slogutil.NewTeeLogger(handler, fileHandler), func() { _ = f.Close() }, nil
}

// loadDependencies returns the manifest's dependency set and the built-ins
// extended with configured extras.
func loadDependencies(cfg *config.Config, logger *slog.Logger) (deps, builtins classify.NameSet) {
	deps = manifest.LoadOrEmpty(cfg.ManifestPath(), logger)
	builtins = classify.DefaultBuiltins().With(cfg.ExtraBuiltins...)
	return deps, builtins
}

// walkMode selects how a walk treats changed files.
type walkMode struct {
	dryRun   bool
	diff     bool
	failFast bool
}

func newWalker(cfg *config.Config, logger *slog.Logger, mode walkMode) (*traverse.Walker, error) {
	if !imports.IsAvailable() {
		return nil, ckerrors.New(ckerrors.InternalError,
			"importfix was built without cgo; import extraction is unavailable", nil)
	}

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, ckerrors.New(ckerrors.ConfigInvalid, "Invalid maxFileSize", err)
	}

	deps, builtins := loadDependencies(cfg, logger)

	return traverse.New(imports.NewExtractor(), traverse.Options{
		ProjectRoot:  cfg.ProjectRoot,
		RootMarker:   cfg.RootMarker,
		Builtins:     builtins,
		Dependencies: deps,
		Extensions:   cfg.Extensions,
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludeGlobs: cfg.ExcludeGlobs,
		MaxFileSize:  maxSize,
		DryRun:       mode.dryRun,
		Diff:         mode.diff,
		FailFast:     mode.failFast,
	}, logger), nil
}
