// Package report describes the outcome of a run and renders it.
package report

import (
	"time"

	ckerrors "importfix/internal/errors"
	"importfix/internal/rewrite"
)

// FileChange lists the rewrites made (or planned, in a dry run) for one file.
type FileChange struct {
	Path     string            `json:"path" yaml:"path" toml:"path"`
	Mappings []rewrite.Mapping `json:"mappings" yaml:"mappings" toml:"mappings"`
	Diff     string            `json:"diff,omitempty" yaml:"diff,omitempty" toml:"diff,omitempty"`
}

// FileError is a per-file failure. The file was left untouched.
type FileError struct {
	Path    string `json:"path" yaml:"path" toml:"path"`
	Code    string `json:"code" yaml:"code" toml:"code"`
	Message string `json:"message" yaml:"message" toml:"message"`
}

// Summary is the result of one traversal.
type Summary struct {
	RunID       string    `json:"runId" yaml:"runId" toml:"runId"`
	ProjectRoot string    `json:"projectRoot" yaml:"projectRoot" toml:"projectRoot"`
	Dir         string    `json:"dir" yaml:"dir" toml:"dir"`
	DryRun      bool      `json:"dryRun" yaml:"dryRun" toml:"dryRun"`
	StartedAt   time.Time `json:"startedAt" yaml:"startedAt" toml:"startedAt"`
	DurationMs  int64     `json:"durationMs" yaml:"durationMs" toml:"durationMs"`

	Dependencies        int    `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	FilesScanned        int    `json:"filesScanned" yaml:"filesScanned" toml:"filesScanned"`
	FilesChanged        int    `json:"filesChanged" yaml:"filesChanged" toml:"filesChanged"`
	FilesSkipped        int    `json:"filesSkipped" yaml:"filesSkipped" toml:"filesSkipped"`
	FilesFailed         int    `json:"filesFailed" yaml:"filesFailed" toml:"filesFailed"`
	BytesScanned        uint64 `json:"bytesScanned" yaml:"bytesScanned" toml:"bytesScanned"`
	SpecifiersSeen      int    `json:"specifiersSeen" yaml:"specifiersSeen" toml:"specifiersSeen"`
	SpecifiersRewritten int    `json:"specifiersRewritten" yaml:"specifiersRewritten" toml:"specifiersRewritten"`

	Changes []FileChange `json:"changes,omitempty" yaml:"changes,omitempty" toml:"changes,omitempty"`
	Errors  []FileError  `json:"errors,omitempty" yaml:"errors,omitempty" toml:"errors,omitempty"`
}

// NewSummary starts a summary for a run.
func NewSummary(runID, projectRoot, dir string, dryRun bool) *Summary {
	return &Summary{
		RunID:       runID,
		ProjectRoot: projectRoot,
		Dir:         dir,
		DryRun:      dryRun,
		StartedAt:   time.Now().UTC(),
	}
}

// AddChange records a changed file.
func (s *Summary) AddChange(path string, mappings []rewrite.Mapping, diff string) {
	s.FilesChanged++
	s.SpecifiersRewritten += len(mappings)
	s.Changes = append(s.Changes, FileChange{Path: path, Mappings: mappings, Diff: diff})
}

// AddError records a failed file.
func (s *Summary) AddError(path string, err error) {
	s.FilesFailed++
	s.Errors = append(s.Errors, FileError{
		Path:    path,
		Code:    string(ckerrors.CodeOf(err)),
		Message: err.Error(),
	})
}

// Finish stamps the run duration.
func (s *Summary) Finish() {
	s.DurationMs = time.Since(s.StartedAt).Milliseconds()
}

// HasChanges reports whether any file changed or would change.
func (s *Summary) HasChanges() bool {
	return s.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (s *Summary) HasErrors() bool {
	return s.FilesFailed > 0
}
