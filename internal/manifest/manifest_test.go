package manifest

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	ckerrors "importfix/internal/errors"
	"importfix/internal/slogutil"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
  "name": "webapp",
  "dependencies": {"react": "^18.0.0", "lodash": "4.17.21"},
  "devDependencies": {"typescript": "^5.4.0", "@types/node": "^20.0.0"},
  "peerDependencies": {"react-dom": "^18.0.0"},
  "optionalDependencies": {"fsevents": "2.3.3"}
}`)

	deps, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"@types/node", "fsevents", "lodash", "react", "react-dom", "typescript"}
	if got := deps.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLoad_NoDependencySections(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{"name": "empty"}`)

	deps, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if deps.Len() != 0 {
		t.Errorf("expected no dependencies, got %v", deps.Names())
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	if !ckerrors.HasCode(err, ckerrors.ManifestLoadFailed) {
		t.Errorf("missing file: expected MANIFEST_LOAD_FAILED, got %v", err)
	}

	path := writeManifest(t, dir, `{"dependencies": [`)
	_, err = Load(path)
	if !ckerrors.HasCode(err, ckerrors.ManifestLoadFailed) {
		t.Errorf("invalid JSON: expected MANIFEST_LOAD_FAILED, got %v", err)
	}
}

func TestLoadOrEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger := slogutil.NewLogger(&buf, slog.LevelWarn)

	deps := LoadOrEmpty(filepath.Join(t.TempDir(), FileName), logger)
	if deps.Len() != 0 {
		t.Errorf("expected empty set, got %v", deps.Names())
	}
	if !strings.Contains(buf.String(), "[warn] Could not load package.json") {
		t.Errorf("expected warning, got: %s", buf.String())
	}

	buf.Reset()
	path := writeManifest(t, t.TempDir(), `{"dependencies": {"vue": "3"}}`)
	deps = LoadOrEmpty(path, logger)
	if !deps.Contains("vue") {
		t.Error("expected vue")
	}
	if buf.Len() != 0 {
		t.Errorf("no warning expected, got: %s", buf.String())
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{}`)
	nested := filepath.Join(root, "src", "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := Find(nested)
	if !ok {
		t.Fatal("expected to find package.json")
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("Find() = %s, want %s", got, want)
	}
}
