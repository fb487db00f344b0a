// Package multigit is the root of the MultiGit module: a CLI and background
// daemon that keeps one local Git working repository synchronized with
// several remote Git hosting services from a single invocation.
package multigit

import (
	"fmt"
	"runtime"
)

// Version information.
// These values can be overridden at build time using -ldflags.
//
// Example:
//
//	go build -ldflags "-X github.com/multigit-io/multigit.GitCommit=$(git rev-parse HEAD)"
var (
	// Version is the current module version following semantic versioning.
	Version = "0.1.0"

	// GitCommit is the git commit SHA of the build.
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// VersionInfo returns detailed version information as a map.
func VersionInfo() map[string]string {
	return map[string]string{
		"version":   Version,
		"gitCommit": GitCommit,
		"buildDate": BuildDate,
		"goVersion": runtime.Version(),
	}
}

// VersionString returns a formatted version string.
func VersionString() string {
	return fmt.Sprintf("multigit version v%s (commit: %s, built: %s)",
		Version, GitCommit, BuildDate)
}
