package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"importfix/internal/report"
)

// updateGolden controls whether expected trees should be rewritten.
// Use: go test ./... -run TestGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareTree compares the tree at root against the fixture's expected/ tree,
// failing with a unified diff per mismatching file.
// If -update flag is set, replaces the expected tree instead of comparing.
func CompareTree(t *testing.T, fixture *FixtureContext, root string) {
	t.Helper()

	got := ReadTree(t, root)

	if *updateGolden {
		UpdateGolden(t, fixture, got)
		t.Logf("Updated golden: %s", fixture.ExpectedDir)
		return
	}

	if _, err := os.Stat(fixture.ExpectedDir); os.IsNotExist(err) {
		t.Fatalf("Expected tree missing: %s\n\nRun with -update to create:\n  go test ./... -run %s -update",
			fixture.ExpectedDir, t.Name())
	}
	want := ReadTree(t, fixture.ExpectedDir)

	var problems []string
	for _, rel := range SortedKeys(want) {
		g, ok := got[rel]
		if !ok {
			problems = append(problems, "missing file: "+rel)
			continue
		}
		if g != want[rel] {
			problems = append(problems, report.UnifiedDiff(rel, []byte(want[rel]), []byte(g)))
		}
	}
	for _, rel := range SortedKeys(got) {
		if _, ok := want[rel]; !ok {
			problems = append(problems, "unexpected file: "+rel)
		}
	}

	if len(problems) > 0 {
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			fixture.Name, strings.Join(problems, "\n"), t.Name())
	}
}

// UpdateGolden replaces the fixture's expected/ tree with files.
func UpdateGolden(t *testing.T, fixture *FixtureContext, files map[string]string) {
	t.Helper()

	if err := os.RemoveAll(fixture.ExpectedDir); err != nil {
		t.Fatalf("Failed to clear expected directory: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(fixture.ExpectedDir), 0o755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	WriteTree(t, fixture.ExpectedDir, files)
}
