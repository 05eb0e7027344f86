// Package traverse walks a source tree and rewrites the imports of every
// matching file, one file at a time.
package traverse

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/google/uuid"

	"importfix/internal/classify"
	"importfix/internal/convert"
	ckerrors "importfix/internal/errors"
	"importfix/internal/paths"
	"importfix/internal/report"
	"importfix/internal/slogutil"
)

// Options configures a Walker.
type Options struct {
	ProjectRoot string
	RootMarker  string

	Builtins     classify.NameSet
	Dependencies classify.NameSet

	// Extensions selects files by suffix, e.g. ".ts"
	Extensions []string

	// ExcludeDirs are directory names skipped anywhere in the tree
	ExcludeDirs []string

	// ExcludeGlobs are doublestar patterns matched against project-relative paths
	ExcludeGlobs []string

	// MaxFileSize skips larger files; zero means no limit
	MaxFileSize uint64

	DryRun   bool
	Diff     bool
	FailFast bool
}

// Walker drives conversion over a directory tree.
type Walker struct {
	opts      Options
	converter *convert.Converter
	logger    *slog.Logger
	exts      map[string]bool
	excluded  map[string]bool
}

// New creates a walker. The extractor is used from a single goroutine.
func New(extractor convert.Extractor, opts Options, logger *slog.Logger) *Walker {
	classifier := classify.New(classify.Options{
		ProjectRoot:  opts.ProjectRoot,
		RootMarker:   opts.RootMarker,
		Builtins:     opts.Builtins,
		Dependencies: opts.Dependencies,
	})
	opts.RootMarker = classifier.RootMarker()

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}
	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		excluded[d] = true
	}

	return &Walker{
		opts:      opts,
		converter: convert.New(extractor, classifier),
		logger:    logger,
		exts:      exts,
		excluded:  excluded,
	}
}

// DefaultDir returns <projectRoot>/<marker>, the directory walked when none is given.
func (w *Walker) DefaultDir() string {
	return filepath.Join(w.opts.ProjectRoot, filepath.FromSlash(w.opts.RootMarker))
}

// Run converts every matching file under dir (DefaultDir when empty). A
// relative dir is taken relative to the project root.
//
// Per-file failures are recorded in the summary and the walk continues unless
// FailFast is set, in which case the first failure is returned together with
// the partial summary. Cancellation is checked between files.
func (w *Walker) Run(ctx context.Context, dir string) (*report.Summary, error) {
	if dir == "" {
		dir = w.DefaultDir()
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(w.opts.ProjectRoot, dir)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, ckerrors.ForFile(ckerrors.FileIOFailed, dir, err)
	}

	runID := uuid.New().String()
	logger := w.logger.With(slogutil.KeyRun, runID)
	summary := report.NewSummary(runID, w.opts.ProjectRoot, dir, w.opts.DryRun)
	summary.Dependencies = w.opts.Dependencies.Len()

	logger.Info(fmt.Sprintf("Found %d dependencies to check against", w.opts.Dependencies.Len()))

	files, err := w.collect(dir, summary, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Collected files", "dir", dir, "count", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			summary.Finish()
			return summary, err
		}

		if err := w.processFile(ctx, file, summary, logger); err != nil && w.opts.FailFast {
			summary.Finish()
			return summary, err
		}
	}

	summary.Finish()
	logger.Info("Import rewrite complete",
		"scanned", summary.FilesScanned,
		"changed", summary.FilesChanged,
		"failed", summary.FilesFailed,
		"dryRun", w.opts.DryRun,
		"durationMs", summary.DurationMs,
	)
	return summary, nil
}

type candidate struct {
	path string
	size int64
	mode fs.FileMode
}

// collect lists matching files in lexical order.
func (w *Walker) collect(dir string, summary *report.Summary, logger *slog.Logger) ([]candidate, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ckerrors.ForFile(ckerrors.FileIOFailed, dir, err)
	}
	if !info.IsDir() {
		return nil, ckerrors.ForFile(ckerrors.FileIOFailed, dir, fmt.Errorf("not a directory"))
	}

	var files []candidate
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			summary.AddError(w.relPath(path), ckerrors.ForFile(ckerrors.FileIOFailed, path, walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != dir && w.excluded[d.Name()] {
				return filepath.SkipDir
			}
			if path != dir && w.matchesGlob(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !w.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if w.matchesGlob(path) {
			logger.Debug("Excluded by glob", slogutil.KeyFile, w.relPath(path))
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			summary.AddError(w.relPath(path), ckerrors.ForFile(ckerrors.FileIOFailed, path, err))
			return nil
		}
		if w.opts.MaxFileSize > 0 && uint64(fi.Size()) > w.opts.MaxFileSize {
			summary.FilesSkipped++
			logger.Debug("Skipping large file", slogutil.KeyFile, w.relPath(path), "size", fi.Size())
			return nil
		}

		files = append(files, candidate{path: path, size: fi.Size(), mode: fi.Mode()})
		return nil
	})
	if err != nil {
		return nil, ckerrors.ForFile(ckerrors.FileIOFailed, dir, err)
	}
	return files, nil
}

func (w *Walker) processFile(ctx context.Context, file candidate, summary *report.Summary, logger *slog.Logger) error {
	rel := w.relPath(file.path)

	content, err := os.ReadFile(file.path)
	if err != nil {
		err = ckerrors.ForFile(ckerrors.FileIOFailed, rel, err)
		summary.AddError(rel, err)
		logger.Error("Failed to read file", slogutil.KeyFile, rel, "error", err.Error())
		return err
	}
	summary.FilesScanned++
	summary.BytesScanned += uint64(len(content))

	res, err := w.converter.Convert(ctx, file.path, content)
	if err != nil {
		summary.AddError(rel, err)
		logger.Warn("Skipping file", slogutil.KeyFile, rel, "error", err.Error())
		return err
	}
	summary.SpecifiersSeen += res.Specifiers

	if !res.Changed {
		logger.Debug("Imports already canonical", slogutil.KeyFile, rel, "specifiers", res.Specifiers)
		return nil
	}

	var diff string
	if w.opts.Diff {
		diff = report.UnifiedDiff(rel, content, res.Content)
	}

	msg := "Updated imports"
	if w.opts.DryRun {
		msg = "Would update imports"
	} else if err := WriteFileAtomic(file.path, res.Content, file.mode.Perm()); err != nil {
		err = ckerrors.ForFile(ckerrors.FileIOFailed, rel, err)
		summary.AddError(rel, err)
		logger.Error("Failed to write file", slogutil.KeyFile, rel, "error", err.Error())
		return err
	}

	summary.AddChange(rel, res.Mappings, diff)
	logger.Info(msg, slogutil.KeyFile, rel, "count", len(res.Mappings))
	for _, m := range res.Mappings {
		logger.Info(m.Original+" → "+m.Replacement, slogutil.KeyFile, rel, slogutil.KeyLine, m.Line, slogutil.KeyCategory, m.Category)
	}
	return nil
}

// matchesGlob reports whether path matches any exclude glob. A malformed
// pattern never matches.
func (w *Walker) matchesGlob(path string) bool {
	if len(w.opts.ExcludeGlobs) == 0 {
		return false
	}
	rel := w.relPath(path)
	for _, pattern := range w.opts.ExcludeGlobs {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// relPath returns path relative to the project root with forward slashes.
func (w *Walker) relPath(path string) string {
	rel, err := paths.CanonicalizePath(path, w.opts.ProjectRoot)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return rel
}
