package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
)

// Result of a best-effort compression step.
type Status int

const (
	Succeeded Status = iota // The binary was compressed in place.
	Skipped                 // The compressor is not available; the binary is untouched.
	Failed                  // The compressor ran and failed; the binary is untouched.
)

// Returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome of a [Compressor] invocation.
//
// Err is set for [Skipped] (why the tool is unavailable) and [Failed] (the
// failure, wrapping [ErrCompress]). Neither is fatal to the caller.
type Outcome struct {
	Status Status
	Err    error
}

// Shrinks a binary in place.
type Compressor interface {

	// Compresses the file at path. Implementations must leave the file
	// unchanged unless the outcome is [Succeeded].
	Compress(ctx context.Context, path string) Outcome
}

// Compresses executables with the upx packer.
type UPX struct {
	Tool string   // upx executable name or path.
	Args []string // Flags placed before the path (e.g., "-9", "-q").
}

// Creates a [UPX] compressor. An empty tool defaults to "upx".
func NewUPX(tool string, args []string) *UPX {
	if tool == "" {
		tool = "upx"
	}
	return &UPX{Tool: tool, Args: slices.Clone(args)}
}

// Runs "<tool> <args> <path>".
//
// When the tool is not on PATH the outcome is [Skipped]. upx writes a
// temporary file and replaces the original only on success, so a failure
// leaves the binary as it was.
func (u *UPX) Compress(ctx context.Context, path string) Outcome {
	tool, err := exec.LookPath(u.Tool)
	if err != nil {
		return Outcome{Status: Skipped, Err: err}
	}

	args := append(slices.Clone(u.Args), path)
	if _, err := Run(ctx, os.Environ(), "", nil, nil, tool, args...); err != nil {
		return Outcome{Status: Failed, Err: fmt.Errorf("%w: %w", ErrCompress, err)}
	}

	return Outcome{Status: Succeeded}
}
