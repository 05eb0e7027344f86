// Package paths provides slash-normalized path helpers shared by the classifier and the walker.
package paths

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CanonicalizePath converts an absolute path to a project-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to project root
// - Converts backslashes to forward slashes
func CanonicalizePath(absolutePath string, projectRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(projectRoot)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = projectRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// NormalizePath converts backslashes to forward slashes and cleans the result.
// Unlike filepath.ToSlash it does not depend on the host separator.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// JoinSlash joins path elements with forward slashes after normalizing each one.
func JoinSlash(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		if e == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(e, "\\", "/"))
	}
	return path.Join(parts...)
}

// RelativePath returns the shortest relative path from fromDir to toPath.
//
// The result always uses forward slashes. It starts with "./" when toPath is
// reachable without leaving fromDir and with one or more "../" otherwise. The
// same directory yields "./". When the two paths share no common root (one is
// absolute and the other is not, or they sit on different volumes) toPath is
// returned normalized.
func RelativePath(fromDir, toPath string) string {
	from := NormalizePath(fromDir)
	to := NormalizePath(toPath)

	if IsAbs(from) != IsAbs(to) {
		return to
	}

	fromParts := segments(from)
	toParts := segments(to)

	if len(fromParts) > 0 && len(toParts) > 0 && isVolume(fromParts[0]) && !strings.EqualFold(fromParts[0], toParts[0]) {
		return to
	}

	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}

	ups := len(fromParts) - common
	parts := make([]string, 0, ups+len(toParts)-common)
	for i := 0; i < ups; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[common:]...)

	if len(parts) == 0 {
		return "./"
	}

	rel := strings.Join(parts, "/")
	if ups == 0 {
		return "./" + rel
	}
	return rel
}

// SegmentIndex returns the index of the first path segment of p equal to seg, or -1.
// Matching is exact: "resource" does not contain the segment "src".
func SegmentIndex(p string, seg string) int {
	if seg == "" {
		return -1
	}
	for i, s := range strings.Split(p, "/") {
		if s == seg {
			return i
		}
	}
	return -1
}

// HasSegment reports whether seg appears as a whole segment of p.
func HasSegment(p string, seg string) bool {
	return SegmentIndex(p, seg) >= 0
}

// IsAbs reports whether a slash-normalized path is absolute, accepting
// Windows drive prefixes on every platform.
func IsAbs(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	return len(p) >= 2 && isVolume(p[:2])
}

// isVolume reports whether s is a Windows drive designator such as "C:".
func isVolume(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func segments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}
