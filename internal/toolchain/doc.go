// Package toolchain runs the external tools a release build depends on.
//
// A [Compiler] turns the source program into a binary for one environment.
// [GoCompiler] runs "go build" with the target's environment, a fixed set of
// flags, and an output path. A failed compilation is reported as
// [ErrCompile].
//
// A [Compressor] shrinks a binary in place. Compression is best effort, so
// its result is an [Outcome] rather than an error: the tool either succeeded,
// was skipped because it is not installed, or failed without affecting the
// rest of the pipeline. [UPX] runs the upx packer.
//
// Example usage:
//
//	c := toolchain.NewGoCompiler(".", []string{"-trimpath", "-ldflags", "-s -w"})
//	if err := c.Compile(ctx, environ, "demo.exe"); err != nil {
//	    return err
//	}
//
//	outcome := toolchain.NewUPX("upx", []string{"-9", "-q"}).Compress(ctx, "demo.exe")
//	if outcome.Status == toolchain.Failed {
//	    slog.Warn("compression failed", "error", outcome.Err)
//	}
package toolchain
