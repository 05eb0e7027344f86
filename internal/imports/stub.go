//go:build !cgo

package imports

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when extraction is unavailable due to missing CGO.
var ErrNoCGO = errors.New("import extraction requires CGO (tree-sitter)")

// Extractor finds module specifiers.
// This is a stub implementation for non-CGO builds.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}

// Extract always fails without CGO.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]Specifier, error) {
	return nil, ErrNoCGO
}

// ExtractSource always fails without CGO.
func (e *Extractor) ExtractSource(ctx context.Context, source []byte, lang Language) ([]Specifier, error) {
	return nil, ErrNoCGO
}
