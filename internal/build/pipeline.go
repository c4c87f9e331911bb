package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/cruciblehq/cruxrel/internal/matrix"
	"github.com/cruciblehq/cruxrel/internal/pack"
	"github.com/cruciblehq/cruxrel/internal/toolchain"
)

// Holds the resolved options shared by every target of a run.
type pipeline struct {
	project        string               // Project name used in archive names.
	binary         string               // Binary base name without suffix.
	suffixPlatform string               // Platform value that gets suffix.
	suffix         string               // Executable suffix.
	base           Env                  // Base environment, toggles already applied.
	compiler       toolchain.Compiler   // Compiler collaborator.
	compressor     toolchain.Compressor // Compressor collaborator, nil when disabled.
	packager       Packager             // Packager collaborator.
	files          []string             // Auxiliary archive entries.
	output         string               // Output directory.
	onResult       func(Result)         // Per-target callback, may be nil.
}

// Creates a [pipeline] from options, applying defaults.
//
// Returns [ErrInvalidOptions] when a required option is missing.
func newPipeline(opts Options) (*pipeline, error) {
	if opts.Project == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidOptions)
	}
	if opts.Compiler == nil {
		return nil, fmt.Errorf("%w: compiler is required", ErrInvalidOptions)
	}
	if opts.Packager == nil {
		return nil, fmt.Errorf("%w: packager is required", ErrInvalidOptions)
	}

	p := &pipeline{
		project:        opts.Project,
		binary:         opts.Binary,
		suffixPlatform: opts.SuffixPlatform,
		suffix:         opts.Suffix,
		base:           Overlay(opts.Base, opts.Toggles...),
		compiler:       opts.Compiler,
		compressor:     opts.Compressor,
		packager:       opts.Packager,
		files:          slices.Clone(opts.Files),
		output:         opts.OutputDir,
		onResult:       opts.OnResult,
	}

	if p.binary == "" {
		p.binary = p.project
	}
	if p.suffixPlatform == "" {
		p.suffixPlatform = DefaultSuffixPlatform
		if p.suffix == "" {
			p.suffix = DefaultSuffix
		}
	}
	if p.output == "" {
		p.output = "."
	}

	return p, nil
}

// Builds each target in order, stopping early only on cancellation.
func (p *pipeline) run(ctx context.Context, targets []matrix.Target) error {
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			slog.Warn("build interrupted", "remaining", len(targets)-i)
			return err
		}

		p.report(p.buildTarget(ctx, target))
	}
	return nil
}

// Hands result to the callback. A panicking callback is logged and does not
// stop the run.
func (p *pipeline) report(result Result) {
	if p.onResult == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("result callback failed",
				"target", result.Name,
				"error", fmt.Errorf("%w: %v", ErrPanic, r),
				"stack", string(debug.Stack()),
			)
		}
	}()

	p.onResult(result)
}

// Runs compile, compress, and package for one target.
//
// Every failure is contained here. Panics raised by a collaborator are
// recovered and reported as [StageFailedUnknown] with the stack logged.
func (p *pipeline) buildTarget(ctx context.Context, target matrix.Target) (result Result) {
	name := target.ArchiveBaseName(p.project)
	result = Result{Target: target, Name: name, Stage: StagePending}

	defer func() {
		if r := recover(); r != nil {
			result.Stage = StageFailedUnknown
			result.Err = fmt.Errorf("%w: %v", ErrPanic, r)
			result.Archive = nil
			slog.Error("target failed unexpectedly",
				"target", name,
				"error", result.Err,
				"stack", string(debug.Stack()),
			)
		}
	}()

	env := Overlay(p.base, target.Variables()...)
	binary := filepath.Join(p.output, p.binaryName(target))

	slog.Info("building target", "target", name, "env", target.String(), "binary", binary)

	if err := p.compiler.Compile(ctx, env.Environ(), binary); err != nil {
		result.Stage = StageFailedCompile
		result.Err = err
		slog.Error("target failed", "target", name, "stage", result.Stage.String(), "error", err)
		return result
	}
	result.Stage = StageCompiled

	if p.compressor != nil {
		outcome := p.compress(ctx, name, binary)
		result.Compression = &outcome
		if outcome.Status == toolchain.Succeeded {
			result.Stage = StageCompressed
		}
	}

	archivePath := filepath.Join(p.output, name+pack.Extension)
	archive, err := p.packager.Pack(binary, archivePath, p.files)
	if archive == nil {
		if err == nil {
			err = fmt.Errorf("%w: packager returned no archive", pack.ErrPackaging)
		}
		result.Stage = StageFailedPackage
		result.Err = err
		slog.Error("target failed", "target", name, "stage", result.Stage.String(), "error", err)
		return result
	}
	if err != nil {
		slog.Warn("archive written with errors", "target", name, "archive", archive.Path, "error", err)
	}

	result.Stage = StagePackaged
	result.Archive = archive

	slog.Info("archive written",
		"target", name,
		"archive", archive.Path,
		"entries", len(archive.Entries),
		"size", humanize.Bytes(uint64(archive.Size)),
		"digest", archive.Digest.String(),
	)
	return result
}

// Runs the compressor and logs any outcome other than success.
func (p *pipeline) compress(ctx context.Context, name, binary string) toolchain.Outcome {
	outcome := p.compressor.Compress(ctx, binary)

	switch outcome.Status {
	case toolchain.Succeeded:
		slog.Debug("binary compressed", "target", name, "binary", binary)
	case toolchain.Skipped:
		slog.Warn("compressor unavailable, shipping uncompressed binary", "target", name, "reason", outcome.Err)
	default:
		slog.Error("compression failed, shipping uncompressed binary",
			"target", name,
			"stage", StageFailedCompress.String(),
			"error", outcome.Err,
		)
	}

	return outcome
}

// Returns the binary filename for a target.
//
// The suffix applies only when the target's platform equals the
// suffix-bearing platform (e.g., "demo.exe" for windows, "demo" elsewhere).
func (p *pipeline) binaryName(target matrix.Target) string {
	if target.Platform() == p.suffixPlatform {
		return p.binary + p.suffix
	}
	return p.binary
}
