// Package build runs the release pipeline over a build matrix.
//
// Targets are processed one at a time in matrix order. For each target the
// pipeline derives an environment by overlaying the target's variables on
// an immutable base environment, compiles the program, optionally
// compresses the binary, and packages it into an archive named after the
// target. The binary name is shared by all targets and is consumed by the
// packager before the next target starts, which is why the pipeline is
// strictly sequential.
//
// Failures are isolated per target. A compile or packaging failure
// abandons that target only; a compression failure is logged and the
// uncompressed binary is shipped; a panic is recovered at the target
// boundary. Nothing short of context cancellation stops the loop early, and
// no aggregate result is returned: each target's outcome is visible through
// logs, the optional [Options.OnResult] callback, and the presence of its
// archive.
//
// Example usage:
//
//	err := build.Run(ctx, m.All(), build.Options{
//	    Project:    "demo",
//	    Base:       build.NewEnv(os.Environ()),
//	    Toggles:    []matrix.Variable{matrix.Var("CGO_ENABLED", "0")},
//	    Compiler:   toolchain.NewGoCompiler(".", []string{"-trimpath", "-ldflags", "-s -w"}),
//	    Compressor: toolchain.NewUPX("upx", []string{"-9", "-q"}),
//	    Packager:   &pack.Packager{},
//	    Files:      []string{"README.md", "LICENSE"},
//	})
package build
