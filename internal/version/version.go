// Package version reports build metadata for the compass binary.
package version

import "fmt"

// Set at build time with -ldflags "-X github.com/example/compass/internal/version.Commit=...".
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the build description shown by --version.
func String() string {
	return fmt.Sprintf("compass dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

// WithSchema appends the schema version of an opened database to the build description.
func WithSchema(schema int) string {
	return fmt.Sprintf("%s, schema v%d", String(), schema)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
