package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Maximum number of stderr bytes quoted in an error message.
const maxStderr = 4096

// Output of an external tool invocation.
type ExecResult struct {
	ExitCode int    // Exit code of the process, -1 if it did not start.
	Stderr   string // Captured standard error, truncated to the last few KiB.
}

// Runs a tool directly (no shell) with the given environment and working
// directory.
//
// Standard output is forwarded to stdout when it is non-nil and discarded
// otherwise. Standard error is both captured and forwarded to stderr. A
// non-zero exit code is reported as [ErrCommand] together with the tail of
// stderr. A nil environ inherits the process environment; otherwise environ
// is the complete environment of the tool, not a delta.
func Run(ctx context.Context, environ []string, dir string, stdout, stderr io.Writer, name string, args ...string) (*ExecResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = environ
	cmd.Dir = dir

	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	var captured bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(&captured, stderr)

	slog.Debug("exec", "command", name, "args", args, "dir", dir)

	err := cmd.Run()
	result := &ExecResult{ExitCode: cmd.ProcessState.ExitCode(), Stderr: tail(captured.String())}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, fmt.Errorf("%w: %s exited with code %d: %s", ErrCommand, name, result.ExitCode, result.Stderr)
	}
	return result, fmt.Errorf("%w: %s: %w", ErrCommand, name, err)
}

// Returns the trimmed tail of a captured stream.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = "..." + s[len(s)-maxStderr:]
	}
	return s
}
