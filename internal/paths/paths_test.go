package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		fromDir string
		toPath  string
		want    string
	}{
		{"sibling directory", "/proj/src/a", "/proj/src/c/d", "../c/d"},
		{"same directory", "/proj/src/a", "/proj/src/a/x", "./x"},
		{"child directory", "/proj/src", "/proj/src/a/b", "./a/b"},
		{"two levels up", "/proj/src/a/b", "/proj/src/x/y", "../../x/y"},
		{"identical", "/proj/src/a", "/proj/src/a", "./"},
		{"parent itself", "/proj/src/a", "/proj/src", ".."},
		{"outside src", "/proj/test", "/proj/src/c", "../src/c"},
		{"trailing slashes", "/proj/src/a/", "/proj/src/c/", "../c"},
		{"backslashes", `C:\proj\src\a`, `C:\proj\src\c\d`, "../c/d"},
		{"different volumes", `C:\proj\src`, `D:\other\x`, "D:/other/x"},
		{"absolute and relative", "/proj/src", "src/x", "src/x"},
		{"relative inputs", "src/a", "src/c", "../c"},
		{"from root", "/", "/proj/x", "./proj/x"},
		{"unclean input", "/proj/src/a/../b", "/proj/src/./c", "../c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativePath(tt.fromDir, tt.toPath)
			if got != tt.want {
				t.Errorf("RelativePath(%q, %q) = %q, want %q", tt.fromDir, tt.toPath, got, tt.want)
			}
		})
	}
}

func TestSegmentIndex(t *testing.T) {
	tests := []struct {
		path string
		seg  string
		want int
	}{
		{"../../src/x/y", "src", 2},
		{"./src", "src", 1},
		{"src/a/src/b", "src", 0},
		{"../resource/x", "src", -1},
		{"./srcs/x", "src", -1},
		{"./lib/x", "", -1},
		{"", "src", -1},
	}

	for _, tt := range tests {
		if got := SegmentIndex(tt.path, tt.seg); got != tt.want {
			t.Errorf("SegmentIndex(%q, %q) = %d, want %d", tt.path, tt.seg, got, tt.want)
		}
		if got := HasSegment(tt.path, tt.seg); got != (tt.want >= 0) {
			t.Errorf("HasSegment(%q, %q) = %v", tt.path, tt.seg, got)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{`a\b\c`, "a/b/c"},
		{"a/b/../c", "a/c"},
		{"./a/", "a"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinSlash(t *testing.T) {
	if got := JoinSlash("/proj", "src", "a/b"); got != "/proj/src/a/b" {
		t.Errorf("JoinSlash = %q", got)
	}
	if got := JoinSlash(`C:\proj`, "", "src"); got != "C:/proj/src" {
		t.Errorf("JoinSlash with empty element = %q", got)
	}
}

func TestCanonicalizePath(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "src", "a", "b.ts")
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("export {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := CanonicalizePath(file, root)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if got != "src/a/b.ts" {
		t.Errorf("Expected src/a/b.ts, got %s", got)
	}

	// Missing files fall back to the literal path
	got, err = CanonicalizePath(filepath.Join(root, "src", "missing.ts"), root)
	if err != nil {
		t.Fatalf("CanonicalizePath failed for missing file: %v", err)
	}
	if got != "src/missing.ts" {
		t.Errorf("Expected src/missing.ts, got %s", got)
	}
}
