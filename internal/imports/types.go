// Package imports extracts static import/export module specifiers from
// JavaScript and TypeScript sources via tree-sitter.
package imports

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Language represents a supported source dialect.
type Language string

const (
	LangJavaScript Language = "javascript" // also covers JSX
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// Kind distinguishes the declaration a specifier was found in.
type Kind string

const (
	KindImport     Kind = "import"
	KindExport     Kind = "export"
	KindTypeImport Kind = "import-type"
	KindTypeExport Kind = "export-type"
)

// Specifier is a module specifier found in a static import or export declaration.
type Specifier struct {
	// Value is the raw text between the quotes
	Value string `json:"value"`

	// Index is the discovery order within the file, starting at 0
	Index int `json:"index"`

	// Start and End delimit Value in the source, quotes excluded
	Start int `json:"start"`
	End   int `json:"end"`

	// Line is the 1-indexed line of the specifier
	Line int `json:"line"`

	Kind Kind `json:"kind"`
}

// ErrUnsupportedLanguage is returned for file extensions with no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseError reports a source file that tree-sitter could not parse cleanly.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("%s: syntax error at %d:%d", e.Path, e.Line, e.Column)
}

// LanguageFromExtension maps a file extension (with the dot) to a dialect.
func LanguageFromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript, true
	default:
		return "", false
	}
}

// LanguageFromPath maps a file path to a dialect by extension.
func LanguageFromPath(path string) (Language, bool) {
	return LanguageFromExtension(filepath.Ext(path))
}
