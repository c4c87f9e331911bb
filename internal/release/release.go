package release

import (
	"github.com/google/shlex"

	"github.com/cruciblehq/cruxrel/internal/matrix"
	"github.com/cruciblehq/cruxrel/internal/resources"
)

const (

	// Go package built when none is configured.
	DefaultPackage = "."

	// Compressor invoked when none is configured.
	DefaultCompressTool = "upx"

	// Compiler flags used when none are configured.
	DefaultFlags = `-trimpath -ldflags "-s -w"`

	// Compressor arguments used when none are configured.
	DefaultCompressArgs = "-9 -q"
)

// Compression settings.
type Compress struct {
	Enabled bool     // Whether binaries are compressed before packaging.
	Tool    string   // Compressor executable, looked up on PATH.
	Args    []string // Arguments placed before the binary path.
}

// Resolved release configuration.
type Config struct {
	Project        string               // First component of every archive name.
	Binary         string               // Binary base name, without suffix.
	Package        string               // Go package to build.
	Platform       string               // Variable that decides the executable suffix.
	SuffixPlatform string               // Platform value whose binaries get Suffix.
	Suffix         string               // Executable suffix.
	Flags          []string             // Compiler flags.
	Env            []matrix.Variable    // Toggles applied to every target.
	Compress       Compress             // Compression settings.
	Files          []string             // Auxiliary archive entries.
	Checksums      bool                 // Write a .sha256 file beside each archive.
	Resources      []resources.Resource // Files prepared before the build.
	Matrix         *matrix.Matrix       // Targets, in declaration order.
}

// Returns the built-in configuration for project.
//
// It covers the common case: the four amd64 targets,
// stripped binaries built without cgo, upx compression, and README.md and
// LICENSE in every archive.
func Default(project string) *Config {
	return &Config{
		Project:        project,
		Binary:         project,
		Package:        DefaultPackage,
		Platform:       matrix.DefaultPlatformVariable,
		SuffixPlatform: "windows",
		Suffix:         ".exe",
		Flags:          mustSplit(DefaultFlags),
		Env:            defaultEnv(),
		Compress: Compress{
			Enabled: true,
			Tool:    DefaultCompressTool,
			Args:    mustSplit(DefaultCompressArgs),
		},
		Files:  defaultFiles(),
		Matrix: matrix.Default(),
	}
}

func defaultEnv() []matrix.Variable {
	return []matrix.Variable{matrix.Var("CGO_ENABLED", "0")}
}

func defaultFiles() []string {
	return []string{"README.md", "LICENSE"}
}

func mustSplit(s string) []string {
	args, err := shlex.Split(s)
	if err != nil {
		panic(err)
	}
	return args
}
