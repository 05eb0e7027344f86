// Package classify decides the canonical form of an import specifier.
package classify

import (
	"path"
	"strings"

	"importfix/internal/paths"
)

// DefaultRootMarker is the directory name that marks project-root-relative imports.
const DefaultRootMarker = "src"

// maxPasses bounds re-classification of a canonical form.
const maxPasses = 4

// Category is the canonical form chosen for a specifier.
type Category string

const (
	Unchanged          Category = "unchanged"
	PackageImport      Category = "package"
	AbsoluteToRelative Category = "absolute-to-relative"
	RelativeNormalize  Category = "relative-normalize"
)

// Result is the classification of one specifier.
type Result struct {
	Specifier   string   `json:"specifier" yaml:"specifier" toml:"specifier"`
	Category    Category `json:"category" yaml:"category" toml:"category"`
	Replacement string   `json:"replacement,omitempty" yaml:"replacement,omitempty" toml:"replacement,omitempty"`
}

// Changed reports whether the specifier should be rewritten.
func (r Result) Changed() bool {
	return r.Category != Unchanged
}

// Options configures a Classifier.
type Options struct {
	// ProjectRoot is the absolute project directory
	ProjectRoot string

	// RootMarker is the directory under ProjectRoot that "absolute" imports are
	// relative to. Defaults to DefaultRootMarker.
	RootMarker string

	Builtins     NameSet
	Dependencies NameSet
}

// Classifier maps specifiers to their canonical form. It holds no mutable
// state; results depend only on the specifier, the importing file and Options.
type Classifier struct {
	root     string
	marker   string
	builtins NameSet
	deps     NameSet
}

// New creates a classifier.
func New(opts Options) *Classifier {
	marker := strings.Trim(paths.NormalizePath(opts.RootMarker), "/")
	if marker == "" || marker == "." {
		marker = DefaultRootMarker
	}
	return &Classifier{
		root:     paths.NormalizePath(opts.ProjectRoot),
		marker:   marker,
		builtins: opts.Builtins,
		deps:     opts.Dependencies,
	}
}

// Classify is a convenience wrapper that builds a one-off classifier with the
// default root marker.
func Classify(specifier string, deps, builtins NameSet, importingFile, projectRoot string) Result {
	return New(Options{
		ProjectRoot:  projectRoot,
		Builtins:     builtins,
		Dependencies: deps,
	}).Classify(specifier, importingFile)
}

// RootMarker returns the marker segment in use.
func (c *Classifier) RootMarker() string {
	return c.marker
}

// Classify returns the canonical form of specifier as imported from importingFile.
//
// Rules, first match wins:
//  1. "@scope/..." is never touched.
//  2. If the first segment after stripping "../" prefixes and one optional
//     marker segment is a built-in or dependency, the bare package form.
//  3. A non-relative specifier is resolved under <root>/<marker> and made relative.
//  4. A relative specifier containing the marker segment is re-resolved from
//     what follows the marker.
//  5. Anything else is unchanged.
//
// The canonical form is re-classified until it is stable, so classifying a
// replacement always yields Unchanged. The returned category is that of the
// last pass that changed the form.
func (c *Classifier) Classify(specifier, importingFile string) Result {
	fromDir := c.importingDir(importingFile)

	result := c.classifyOnce(specifier, fromDir)
	for pass := 1; pass < maxPasses && result.Changed(); pass++ {
		next := c.classifyOnce(result.Replacement, fromDir)
		if !next.Changed() {
			break
		}
		result = Result{Specifier: specifier, Category: next.Category, Replacement: next.Replacement}
	}

	if result.Replacement == specifier {
		return unchanged(specifier)
	}
	return result
}

// ClassifyAll classifies specifiers in order.
func (c *Classifier) ClassifyAll(specifiers []string, importingFile string) []Result {
	results := make([]Result, len(specifiers))
	for i, s := range specifiers {
		results[i] = c.Classify(s, importingFile)
	}
	return results
}

func (c *Classifier) classifyOnce(spec, fromDir string) Result {
	if spec == "" || strings.HasPrefix(spec, "@") || strings.HasPrefix(spec, "/") {
		return unchanged(spec)
	}

	if bare := c.stripToPackage(spec); bare != "" {
		root, _, _ := strings.Cut(bare, "/")
		if c.builtins.Contains(root) || c.deps.Contains(root) {
			if bare == spec {
				return unchanged(spec)
			}
			return Result{Specifier: spec, Category: PackageImport, Replacement: bare}
		}
	}

	first, _, _ := strings.Cut(spec, "/")
	if strings.Contains(first, ":") {
		// node:fs, https://..., virtual:x
		return unchanged(spec)
	}

	if !strings.HasPrefix(spec, ".") {
		remainder := strings.TrimPrefix(spec, c.marker+"/")
		return c.relativeTo(spec, AbsoluteToRelative, remainder, fromDir)
	}

	if idx := paths.SegmentIndex(spec, c.marker); idx >= 0 {
		segs := strings.Split(spec, "/")
		remainder := strings.Join(segs[idx+1:], "/")
		return c.relativeTo(spec, RelativeNormalize, remainder, fromDir)
	}

	return unchanged(spec)
}

// stripToPackage drops leading "../" segments and one optional marker segment.
func (c *Classifier) stripToPackage(spec string) string {
	rest := spec
	for strings.HasPrefix(rest, "../") {
		rest = rest[len("../"):]
	}
	return strings.TrimPrefix(rest, c.marker+"/")
}

func (c *Classifier) relativeTo(spec string, cat Category, remainder, fromDir string) Result {
	target := paths.JoinSlash(c.root, c.marker, remainder)
	canonical := paths.RelativePath(fromDir, target)
	if canonical == spec {
		return unchanged(spec)
	}
	return Result{Specifier: spec, Category: cat, Replacement: canonical}
}

func (c *Classifier) importingDir(importingFile string) string {
	file := paths.NormalizePath(importingFile)
	if !paths.IsAbs(file) {
		file = paths.JoinSlash(c.root, file)
	}
	return path.Dir(file)
}

func unchanged(spec string) Result {
	return Result{Specifier: spec, Category: Unchanged}
}
