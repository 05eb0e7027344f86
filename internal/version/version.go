// Package version holds build information for importfix.
package version

// Set at build time:
//
//	go build -ldflags "-X importfix/internal/version.Version=0.5.0 -X importfix/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "0.4.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

const shortCommitLen = 7

// Info is the version reported by --version, with the abbreviated commit
// appended when a full hash was linked in.
func Info() string {
	if c := shortCommit(); c != "" {
		return Version + " (" + c + ")"
	}
	return Version
}

// Full is the multi-line text printed by `importfix version`.
func Full() string {
	return "importfix version " + Info() + "\n" +
		"commit:  " + Commit + "\n" +
		"built:   " + BuildDate
}

func shortCommit() string {
	if Commit == "unknown" || len(Commit) <= shortCommitLen {
		return ""
	}
	return Commit[:shortCommitLen]
}
