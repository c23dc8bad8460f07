// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags, e.g.
//
//	-X github.com/open-cli-collective/md-preview/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the one-line version banner printed by mdp --version.
func String() string {
	return fmt.Sprintf("mdp version %s (commit: %s, built: %s)", Version, Commit, Date)
}
