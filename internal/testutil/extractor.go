package testutil

import (
	"bytes"
	"context"
	"regexp"

	"importfix/internal/imports"
)

// SyntaxErrorMarker makes RegexExtractor report a parse error.
const SyntaxErrorMarker = "@@syntax-error@@"

var staticImport = regexp.MustCompile(`(?m)^\s*(?:(?:import|export)\b[^"\n]*\bfrom|import)\s*"([^"\n]*)"`)

// RegexExtractor finds `import ... from "x"`, `export ... from "x"` and
// `import "x"` lines without tree-sitter, for tests that must run without
// cgo. It understands only one declaration per line.
type RegexExtractor struct{}

// Extract implements convert.Extractor.
func (RegexExtractor) Extract(_ context.Context, path string, source []byte) ([]imports.Specifier, error) {
	if _, ok := imports.LanguageFromPath(path); !ok {
		return nil, imports.ErrUnsupportedLanguage
	}
	if i := bytes.Index(source, []byte(SyntaxErrorMarker)); i >= 0 {
		return nil, &imports.ParseError{Path: path, Line: bytes.Count(source[:i], []byte("\n")) + 1, Column: 1}
	}

	var specs []imports.Specifier
	for _, m := range staticImport.FindAllSubmatchIndex(source, -1) {
		specs = append(specs, imports.Specifier{
			Value: string(source[m[2]:m[3]]),
			Index: len(specs),
			Start: m[2],
			End:   m[3],
			Line:  bytes.Count(source[:m[2]], []byte("\n")) + 1,
			Kind:  imports.KindImport,
		})
	}
	return specs, nil
}
