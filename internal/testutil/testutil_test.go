package testutil

import (
	"context"
	"errors"
	"testing"

	"importfix/internal/imports"
)

func TestWriteReadTree(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"package.json":     "{}",
		"src/a/b.ts":       "export {};\n",
		"src/node_modules": "not a dir",
	}

	WriteTree(t, root, files)
	got := ReadTree(t, root)

	if len(got) != len(files) {
		t.Fatalf("ReadTree() returned %d files, want %d", len(got), len(files))
	}
	for k, v := range files {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}

	keys := SortedKeys(got)
	if keys[0] != "package.json" || keys[2] != "src/node_modules" {
		t.Errorf("SortedKeys() = %v", keys)
	}
}

func TestRegexExtractor(t *testing.T) {
	src := `import a from "src/a";
import "./side-effect";
export * from "../b";
export const x = "src/not-an-import";
const lazy = import("src/lazy");
`
	specs, err := RegexExtractor{}.Extract(context.Background(), "x.ts", []byte(src))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []string{"src/a", "./side-effect", "../b"}
	if len(specs) != len(want) {
		t.Fatalf("got %d specifiers: %+v", len(specs), specs)
	}
	for i, s := range specs {
		if s.Value != want[i] || s.Index != i || src[s.Start:s.End] != want[i] || s.Line != i+1 {
			t.Errorf("specifier %d = %+v", i, s)
		}
	}
}

func TestRegexExtractor_Errors(t *testing.T) {
	ex := RegexExtractor{}

	_, err := ex.Extract(context.Background(), "x.ts", []byte("import {\n"+SyntaxErrorMarker))
	var perr *imports.ParseError
	if !errors.As(err, &perr) || perr.Line != 2 {
		t.Errorf("expected ParseError at line 2, got %v", err)
	}

	if _, err := ex.Extract(context.Background(), "x.css", nil); !errors.Is(err, imports.ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}
}
