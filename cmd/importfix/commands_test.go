package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"importfix/internal/classify"
	"importfix/internal/config"
	"importfix/internal/report"
	"importfix/internal/testutil"
	"importfix/internal/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"package.json": `{"dependencies": {"lodash": "^4.17.21"}}`,
	})

	out, err := execute(t, "classify", "--root", root, "--format", "json",
		filepath.Join(root, "src", "a", "b.ts"),
		"src/c/d", "../lodash/fp", "./sibling", "@scope/pkg")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}

	var got report.Classification
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if got.File != "src/a/b.ts" {
		t.Errorf("File = %q", got.File)
	}

	want := []classify.Result{
		{Specifier: "src/c/d", Category: classify.AbsoluteToRelative, Replacement: "../c/d"},
		{Specifier: "../lodash/fp", Category: classify.PackageImport, Replacement: "lodash/fp"},
		{Specifier: "./sibling", Category: classify.Unchanged},
		{Specifier: "@scope/pkg", Category: classify.Unchanged},
	}
	if len(got.Results) != len(want) {
		t.Fatalf("Results = %+v", got.Results)
	}
	for i := range want {
		if got.Results[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, got.Results[i], want[i])
		}
	}
}

func TestClassifyCommand_InvalidConfig(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "classify", "--root", root, "--marker", "a/b", "x.ts", "y")
	if err == nil || !strings.Contains(err.Error(), "CONFIG_INVALID") {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "init", "--root", root)
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "initialized successfully") {
		t.Errorf("unexpected output: %s", out)
	}

	cfg, err := config.LoadConfig(root, "", nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.RootMarker != "src" || cfg.ProjectRoot != root {
		t.Errorf("written config = %+v", cfg)
	}

	// second run leaves the file alone
	if err := os.WriteFile(filepath.Join(root, config.FileName), []byte("rootMarker = \"lib\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "init", "--root", root)
	if err != nil {
		t.Fatalf("second init error = %v", err)
	}
	if !strings.Contains(out, "already initialized") {
		t.Errorf("unexpected output: %s", out)
	}
	data, _ := os.ReadFile(filepath.Join(root, config.FileName))
	if string(data) != "rootMarker = \"lib\"\n" {
		t.Errorf("existing config was overwritten: %s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "importfix version "+version.Info()+"\n") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "commit:  "+version.Commit) {
		t.Errorf("missing commit line: %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.Flags().Set("version", "false") })

	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "importfix version "+version.Info()+"\n" {
		t.Errorf("--version = %q", out)
	}
}
