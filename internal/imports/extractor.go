//go:build cgo

package imports

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Tree-sitter node types shared by the JavaScript and TypeScript grammars.
const (
	nodeImportStatement = "import_statement"
	nodeExportStatement = "export_statement"
	nodeString          = "string"
	nodeEscapeSequence  = "escape_sequence"
	nodeError           = "ERROR"
	fieldSource         = "source"
	tokenType           = "type"
)

// Extractor finds module specifiers with tree-sitter.
// An Extractor owns its parser and must not be shared between goroutines.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		parser: sitter.NewParser(),
	}
}

// IsAvailable returns whether tree-sitter extraction is compiled in.
func IsAvailable() bool {
	return true
}

// Extract picks the dialect from path's extension and extracts its specifiers.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]Specifier, error) {
	lang, ok := LanguageFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	specs, err := e.ExtractSource(ctx, source, lang)
	if perr, ok := err.(*ParseError); ok {
		perr.Path = path
	}
	return specs, err
}

// ExtractSource returns the specifiers of every static import/export
// declaration that names a module with a plain string literal, in source order.
// Dynamic import(), require() and import-equals forms are not reported.
//
// JavaScript sources that do not parse cleanly are parsed again with the TSX
// grammar, which accepts type-only declarations in .js files.
func (e *Extractor) ExtractSource(ctx context.Context, source []byte, lang Language) ([]Specifier, error) {
	tree, err := e.parse(ctx, source, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() && lang == LangJavaScript {
		alt, err := e.parse(ctx, source, LangTSX)
		if err != nil {
			return nil, err
		}
		defer alt.Close()
		if !alt.RootNode().HasError() {
			root = alt.RootNode()
		}
	}

	if root.HasError() {
		return nil, newParseError(root)
	}

	return collectSpecifiers(root, source), nil
}

func (e *Extractor) parse(ctx context.Context, source []byte, lang Language) (*sitter.Tree, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	e.parser.SetLanguage(tsLang)
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree, nil
}

func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
}

// collectSpecifiers walks the tree in pre-order so results follow source order.
// Nested declarations (e.g. inside `declare module` blocks) are included.
func collectSpecifiers(root *sitter.Node, source []byte) []Specifier {
	var specs []Specifier

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type() {
		case nodeImportStatement, nodeExportStatement:
			if spec, ok := specifierOf(node, source); ok {
				spec.Index = len(specs)
				specs = append(specs, spec)
			}
		case nodeString:
			continue
		}

		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			if child := node.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return specs
}

func specifierOf(stmt *sitter.Node, source []byte) (Specifier, bool) {
	str := stmt.ChildByFieldName(fieldSource)
	if str == nil || str.Type() != nodeString {
		return Specifier{}, false
	}

	// The raw text of an escaped literal is not the module name.
	for i := 0; i < int(str.NamedChildCount()); i++ {
		if child := str.NamedChild(i); child != nil && child.Type() == nodeEscapeSequence {
			return Specifier{}, false
		}
	}

	start := int(str.StartByte()) + 1
	end := int(str.EndByte()) - 1
	if end < start {
		return Specifier{}, false
	}

	return Specifier{
		Value: string(source[start:end]),
		Start: start,
		End:   end,
		Line:  int(str.StartPoint().Row) + 1,
		Kind:  kindOf(stmt),
	}, true
}

func kindOf(stmt *sitter.Node) Kind {
	typeOnly := false
	for i := 0; i < int(stmt.ChildCount()); i++ {
		child := stmt.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == tokenType {
			typeOnly = true
			break
		}
	}

	switch {
	case stmt.Type() == nodeImportStatement && typeOnly:
		return KindTypeImport
	case stmt.Type() == nodeImportStatement:
		return KindImport
	case typeOnly:
		return KindTypeExport
	default:
		return KindExport
	}
}

func newParseError(root *sitter.Node) *ParseError {
	node := firstErrorNode(root)
	if node == nil {
		node = root
	}
	pt := node.StartPoint()
	return &ParseError{
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
	}
}

// firstErrorNode finds the earliest ERROR or MISSING node below n.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == nodeError || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == nodeError || child.IsMissing() {
			return child
		}
		if child.HasError() {
			if found := firstErrorNode(child); found != nil {
				return found
			}
		}
	}
	return nil
}
