package imports

import "testing"

func TestLanguageFromExtension(t *testing.T) {
	tests := []struct {
		ext      string
		expected Language
		ok       bool
	}{
		{".ts", LangTypeScript, true},
		{".mts", LangTypeScript, true},
		{".cts", LangTypeScript, true},
		{".tsx", LangTSX, true},
		{".TSX", LangTSX, true},
		{".js", LangJavaScript, true},
		{".jsx", LangJavaScript, true},
		{".mjs", LangJavaScript, true},
		{".cjs", LangJavaScript, true},
		{".go", "", false},
		{".d", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			lang, ok := LanguageFromExtension(tt.ext)
			if ok != tt.ok || lang != tt.expected {
				t.Errorf("LanguageFromExtension(%q) = (%q, %v), want (%q, %v)", tt.ext, lang, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLanguageFromPath(t *testing.T) {
	if lang, ok := LanguageFromPath("/proj/src/types.d.ts"); !ok || lang != LangTypeScript {
		t.Errorf("expected typescript for .d.ts, got %q %v", lang, ok)
	}
	if _, ok := LanguageFromPath("/proj/README.md"); ok {
		t.Error("markdown should not be supported")
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Path: "src/a.ts", Line: 3, Column: 7}
	if got := err.Error(); got != "src/a.ts: syntax error at 3:7" {
		t.Errorf("Error() = %q", got)
	}

	err = &ParseError{Line: 1, Column: 1}
	if got := err.Error(); got != "syntax error at 1:1" {
		t.Errorf("Error() without path = %q", got)
	}
}
