package toolchain

import (
	"context"
	"fmt"
	"io"
	"slices"
)

// Produces a binary for one target environment.
type Compiler interface {

	// Builds the program with the given environment ("NAME=value" entries)
	// and writes the binary to output. Returns an error wrapping
	// [ErrCompile] when no binary was produced.
	Compile(ctx context.Context, environ []string, output string) error
}

// Builds a Go main package with "go build".
type GoCompiler struct {
	Tool    string    // Go command, "go" when empty.
	Package string    // Package to build, relative to Dir (e.g., "." or "./cmd/app").
	Dir     string    // Working directory of the build. Empty uses the process cwd.
	Flags   []string  // Flags inserted before "-o" (e.g., "-trimpath", "-ldflags", "-s -w").
	Stdout  io.Writer // Receives compiler output. Nil discards it.
	Stderr  io.Writer // Receives compiler diagnostics. Nil discards them.
}

// Creates a [GoCompiler] for the package in the working directory.
func NewGoCompiler(pkg string, flags []string) *GoCompiler {
	return &GoCompiler{Package: pkg, Flags: slices.Clone(flags)}
}

// Runs "go build <flags> -o <output> <package>" with environ.
func (c *GoCompiler) Compile(ctx context.Context, environ []string, output string) error {
	if _, err := Run(ctx, environ, c.Dir, c.Stdout, c.Stderr, c.tool(), c.args(output)...); err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return nil
}

// Returns the go command to run.
func (c *GoCompiler) tool() string {
	if c.Tool == "" {
		return "go"
	}
	return c.Tool
}

// Returns the argument list for a build writing to output.
func (c *GoCompiler) args(output string) []string {
	pkg := c.Package
	if pkg == "" {
		pkg = "."
	}

	args := make([]string, 0, len(c.Flags)+4)
	args = append(args, "build")
	args = append(args, c.Flags...)
	args = append(args, "-o", output, pkg)
	return args
}
