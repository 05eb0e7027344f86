// Package manifest loads the dependency set declared in package.json.
package manifest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"importfix/internal/classify"
	ckerrors "importfix/internal/errors"
)

// FileName is the manifest file looked up in the project root.
const FileName = "package.json"

type packageJSON struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// Load returns every package name declared in the manifest at path.
// Failures are reported as MANIFEST_LOAD_FAILED errors.
func Load(path string) (classify.NameSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return classify.NameSet{}, ckerrors.ForFile(ckerrors.ManifestLoadFailed, path, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return classify.NameSet{}, ckerrors.ForFile(ckerrors.ManifestLoadFailed, path, fmt.Errorf("invalid JSON: %w", err))
	}

	var names []string
	for _, deps := range []map[string]string{
		pkg.Dependencies,
		pkg.DevDependencies,
		pkg.PeerDependencies,
		pkg.OptionalDependencies,
	} {
		for name := range deps {
			names = append(names, name)
		}
	}

	return classify.NewNameSet(names...), nil
}

// LoadOrEmpty loads the manifest, logging a warning and returning an empty set
// when it cannot be read. Classification then relies on built-ins only.
func LoadOrEmpty(path string, logger *slog.Logger) classify.NameSet {
	deps, err := Load(path)
	if err != nil {
		logger.Warn("Could not load package.json, dependency checking will be limited",
			"path", path,
			"error", err.Error(),
		)
		return classify.NameSet{}
	}
	return deps
}

// Find walks up from dir looking for package.json and returns the directory
// that holds it.
func Find(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if info, err := os.Stat(filepath.Join(abs, FileName)); err == nil && !info.IsDir() {
			return abs, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}
