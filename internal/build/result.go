package build

import (
	"fmt"

	"github.com/cruciblehq/cruxrel/internal/matrix"
	"github.com/cruciblehq/cruxrel/internal/pack"
	"github.com/cruciblehq/cruxrel/internal/toolchain"
)

// Last pipeline stage a target reached.
type Stage int

const (
	StagePending          Stage = iota // Not attempted yet.
	StageCompiled                      // Binary produced.
	StageCompressed                    // Binary compressed in place.
	StagePackaged                      // Archive written.
	StageFailedCompile                 // Compiler failed; target abandoned.
	StageFailedCompress                // Compressor failed; pipeline continued uncompressed.
	StageFailedPackage                 // Packager failed; target abandoned.
	StageFailedUnknown                 // Unexpected failure (panic); target abandoned.
)

// Returns the name used for the stage in log output.
func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageCompiled:
		return "compiled"
	case StageCompressed:
		return "compressed"
	case StagePackaged:
		return "packaged"
	case StageFailedCompile:
		return "failed-at-compile"
	case StageFailedCompress:
		return "failed-at-compress"
	case StageFailedPackage:
		return "failed-at-package"
	case StageFailedUnknown:
		return "failed-unknown"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Outcome of one target's pipeline.
//
// A Result lives only as long as the [Options.OnResult] callback that
// receives it; the pipeline keeps no results across targets.
type Result struct {
	Target      matrix.Target      // Target that was attempted.
	Name        string             // Archive base name of the target.
	Stage       Stage              // Last stage reached.
	Err         error              // Failure that abandoned the target, nil otherwise.
	Compression *toolchain.Outcome // Outcome of the compression step, nil when disabled.
	Archive     *pack.Archive      // Written archive, nil unless packaged.
}

// Reports whether the target was abandoned.
func (r Result) Failed() bool {
	switch r.Stage {
	case StageFailedCompile, StageFailedPackage, StageFailedUnknown:
		return true
	}
	return false
}

// Reports whether the target shipped without its best-effort steps.
func (r Result) Degraded() bool {
	return r.Compression != nil && r.Compression.Status != toolchain.Succeeded
}
