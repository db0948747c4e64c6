// Package buildinfo holds release metadata stamped in at link time.
package buildinfo

import "fmt"

var (
	// Version will be set via ldflags during build. Update checks compare
	// release manifests against it.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)

// String is the text printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
