// Package convert runs the per-file pipeline: extract, classify, rewrite.
package convert

import (
	"context"
	"errors"
	"fmt"

	"importfix/internal/classify"
	ckerrors "importfix/internal/errors"
	"importfix/internal/imports"
	"importfix/internal/rewrite"
)

// FileResult is the outcome of converting one file.
type FileResult struct {
	Path    string
	Changed bool

	// Content is the rewritten source; equal to the input when Changed is false
	Content []byte

	// Mappings are the applied (original, replacement) pairs in discovery order
	Mappings []rewrite.Mapping

	// Specifiers is the number of static specifiers found
	Specifiers int
}

// Extractor finds the static import/export specifiers of a file.
type Extractor interface {
	Extract(ctx context.Context, path string, source []byte) ([]imports.Specifier, error)
}

// Converter rewrites import specifiers of one file at a time.
type Converter struct {
	extractor  Extractor
	classifier *classify.Classifier
}

// New creates a converter.
func New(extractor Extractor, classifier *classify.Classifier) *Converter {
	return &Converter{
		extractor:  extractor,
		classifier: classifier,
	}
}

// Convert canonicalizes every specifier in content. path must be the file's
// absolute location; relative targets are computed from its directory.
// On error the content is never modified.
func (c *Converter) Convert(ctx context.Context, path string, content []byte) (*FileResult, error) {
	specs, err := c.extractor.Extract(ctx, path, content)
	if err != nil {
		return nil, classifyError(path, err)
	}

	mappings := c.Plan(path, specs)

	out, changed, err := rewrite.Apply(content, mappings)
	if err != nil {
		return nil, ckerrors.ForFile(ckerrors.InternalError, path, err)
	}

	result := &FileResult{
		Path:       path,
		Changed:    changed,
		Content:    out,
		Specifiers: len(specs),
	}
	if changed {
		result.Mappings = mappings
	}
	return result, nil
}

// Plan classifies specs and returns a mapping for each one that changes.
func (c *Converter) Plan(path string, specs []imports.Specifier) []rewrite.Mapping {
	var mappings []rewrite.Mapping
	for _, s := range specs {
		res := c.classifier.Classify(s.Value, path)
		if !res.Changed() {
			continue
		}
		mappings = append(mappings, rewrite.Mapping{
			Original:    s.Value,
			Replacement: res.Replacement,
			Category:    string(res.Category),
			Index:       s.Index,
			Start:       s.Start,
			End:         s.End,
			Line:        s.Line,
		})
	}
	return mappings
}

func classifyError(path string, err error) error {
	var perr *imports.ParseError
	switch {
	case errors.As(err, &perr):
		return ckerrors.ForFile(ckerrors.ParseFailed, path, err)
	case errors.Is(err, imports.ErrUnsupportedLanguage):
		return ckerrors.ForFile(ckerrors.UnsupportedLanguage, path, err)
	default:
		return ckerrors.ForFile(ckerrors.InternalError, path, fmt.Errorf("extract: %w", err))
	}
}
