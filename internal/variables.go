package internal

import (
	"fmt"
	"runtime"
	"strings"
)

const (

	// Name of the tool, used for log groups and cache directories.
	Name = "cruxrel"

	// String to indicate an undefined variable.
	defaultUndefined = "(undefined)"

	// String to indicate a local (non-pipeline) build.
	defaultLocalBuild = "(local)"
)

var (
	version   = "" // Version number (e.g., "1.2.3")
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4")

	rawQuiet       = "false"        // Whether to enable quiet mode
	rawDebug       = "false"        // Whether to enable debug mode
	rawVerbose     = "false"        // Whether to enable verbose logging
	rawReleaseFile = "release.yaml" // Release file looked up when --file is not given
)

// Returns the current version without any "v" prefix, or "(undefined)".
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(strings.ToLower(v), "v")
}

// Returns the git commit hash, or "(undefined)".
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Returns the platform the tool itself was built for (e.g., "linux/amd64").
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Returns true if either the version or the git commit was left unset by the
// build pipeline.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" || strings.TrimSpace(gitCommit) == ""
}

// Returns a detailed version string.
//
// Local builds report "(local) [<os>/<arch>]". Pipeline builds report
// "<version> <git-commit> [<os>/<arch>]".
func VersionString() string {
	if IsLocal() {
		return fmt.Sprintf("%s [%s]", defaultLocalBuild, Platform())
	}
	return fmt.Sprintf("%s %s [%s]", Version(), GitCommit(), Platform())
}
