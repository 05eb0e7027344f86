//go:build cgo

package imports

import (
	"context"
	"errors"
	"testing"
)

func values(specs []Specifier) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Value
	}
	return out
}

func assertValues(t *testing.T, specs []Specifier, want ...string) {
	t.Helper()
	got := values(specs)
	if len(got) != len(want) {
		t.Fatalf("got %d specifiers %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("specifier %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractSource_TypeScript(t *testing.T) {
	source := []byte(`import fs from "fs";
import type { Config } from './types';
import { helper } from "src/utils/helper";
import "./polyfills";
export * from "../src/models/user";
export { a, b } from '../../src/lib/ab';
import legacy = require("src/legacy");

const notAnImport = "src/utils/helper";

async function load() {
  return import("src/lazy");
}

const req = require("src/req");

export const value = 1;
`)

	e := NewExtractor()
	specs, err := e.ExtractSource(context.Background(), source, LangTypeScript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValues(t, specs,
		"fs",
		"./types",
		"src/utils/helper",
		"./polyfills",
		"../src/models/user",
		"../../src/lib/ab",
	)

	for i, s := range specs {
		if s.Index != i {
			t.Errorf("specifier %q has index %d, want %d", s.Value, s.Index, i)
		}
		if string(source[s.Start:s.End]) != s.Value {
			t.Errorf("range [%d:%d] = %q, want %q", s.Start, s.End, source[s.Start:s.End], s.Value)
		}
	}

	if specs[0].Line != 1 || specs[2].Line != 3 {
		t.Errorf("unexpected lines: %d, %d", specs[0].Line, specs[2].Line)
	}

	wantKinds := []Kind{KindImport, KindTypeImport, KindImport, KindImport, KindExport, KindExport}
	for i, k := range wantKinds {
		if specs[i].Kind != k {
			t.Errorf("specifier %q kind = %s, want %s", specs[i].Value, specs[i].Kind, k)
		}
	}
}

func TestExtractSource_TSX(t *testing.T) {
	source := []byte(`import React from "react";
import { Button } from "src/components/Button";

export const App = () => <div className="src/components/Button"><Button label="x" /></div>;
`)

	specs, err := NewExtractor().ExtractSource(context.Background(), source, LangTSX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValues(t, specs, "react", "src/components/Button")
}

func TestExtractSource_JSX(t *testing.T) {
	source := []byte(`import React from 'react';
import Header from 'src/layout/Header';

export default function Page() {
  return <Header title="src/layout/Header" />;
}
`)

	specs, err := NewExtractor().ExtractSource(context.Background(), source, LangJavaScript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValues(t, specs, "react", "src/layout/Header")
}

func TestExtractSource_AmbientModule(t *testing.T) {
	source := []byte(`declare module "virtual-config" {
  import { Shape } from "src/shapes";
  export const shape: Shape;
}
`)

	specs, err := NewExtractor().ExtractSource(context.Background(), source, LangTypeScript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValues(t, specs, "src/shapes")
}

func TestExtractSource_SkipsEscapedLiterals(t *testing.T) {
	source := []byte(`import a from "./a\x62";
import c from "./c";
`)

	specs, err := NewExtractor().ExtractSource(context.Background(), source, LangJavaScript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValues(t, specs, "./c")
	if specs[0].Index != 0 {
		t.Errorf("index should count reported specifiers only, got %d", specs[0].Index)
	}
}

func TestExtractSource_ParseError(t *testing.T) {
	source := []byte(`import { from "x";
`)

	_, err := NewExtractor().ExtractSource(context.Background(), source, LangTypeScript)
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Line != 1 {
		t.Errorf("expected error on line 1, got %d", perr.Line)
	}
}

func TestExtract_ByPath(t *testing.T) {
	e := NewExtractor()

	specs, err := e.Extract(context.Background(), "/proj/src/a.ts", []byte(`export { x } from "src/x";`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, specs, "src/x")

	_, err = e.Extract(context.Background(), "/proj/src/a.css", []byte(`body {}`))
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}

	_, err = e.Extract(context.Background(), "/proj/src/broken.ts", []byte(`import { from "x";`))
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Path != "/proj/src/broken.ts" {
		t.Errorf("expected ParseError with path, got %v", err)
	}
}

func TestExtractSource_NoDeclarations(t *testing.T) {
	specs, err := NewExtractor().ExtractSource(context.Background(), []byte("const x = 1;\n"), LangJavaScript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("expected no specifiers, got %v", values(specs))
	}
}

func TestExtract_TypeImportInJavaScript(t *testing.T) {
	source := []byte(`import type { X } from "src/x";
import y from "./y";
`)

	specs, err := NewExtractor().Extract(context.Background(), "/proj/src/a.js", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValues(t, specs, "src/x", "./y")
	if specs[0].Kind != KindTypeImport || specs[1].Kind != KindImport {
		t.Errorf("kinds = %s, %s", specs[0].Kind, specs[1].Kind)
	}
	for _, s := range specs {
		if string(source[s.Start:s.End]) != s.Value {
			t.Errorf("range [%d:%d] = %q, want %q", s.Start, s.End, source[s.Start:s.End], s.Value)
		}
	}
}

func TestExtractSource_JavaScriptSyntaxErrorStillFails(t *testing.T) {
	_, err := NewExtractor().ExtractSource(context.Background(), []byte(`import { from "x";`), LangJavaScript)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

// The pinned typescript grammar predates these forms; files using them are
// reported as parse errors and left untouched.
func TestExtractSource_GrammarGaps(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"export type star", `export type * from "src/types";`},
		{"import assertion", `import d from "src/d.json" assert { type: "json" };`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtractor().ExtractSource(context.Background(), []byte(tt.source), LangTypeScript)

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Line != 1 {
				t.Errorf("Line = %d, want 1", perr.Line)
			}
		})
	}
}
