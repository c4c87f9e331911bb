package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cruciblehq/cruxrel/internal/matrix"
	"github.com/cruciblehq/cruxrel/internal/pack"
	"github.com/cruciblehq/cruxrel/internal/toolchain"
)

const (

	// Platform value whose binaries carry [DefaultSuffix].
	DefaultSuffixPlatform = "windows"

	// Executable suffix for [DefaultSuffixPlatform].
	DefaultSuffix = ".exe"

	// Default permission mode for the output directory.
	DefaultDirMode os.FileMode = 0755
)

// Writes one archive per target.
type Packager interface {

	// Packages binary and the auxiliary entries into archivePath. When the
	// archive was written but a follow-up step failed (e.g., its checksum),
	// both the archive and the error are returned.
	Pack(binary, archivePath string, aux []string) (*pack.Archive, error)
}

// Controls a pipeline run.
type Options struct {
	Project        string               // Project name, the first component of every archive name.
	Binary         string               // Binary base name. Defaults to Project.
	SuffixPlatform string               // Platform value that gets Suffix. Defaults to [DefaultSuffixPlatform].
	Suffix         string               // Executable suffix. Defaults to [DefaultSuffix] when SuffixPlatform is empty too.
	Base           Env                  // Ambient environment every target starts from.
	Toggles        []matrix.Variable    // Applied to every target before its own variables (e.g., CGO_ENABLED=0).
	Compiler       toolchain.Compiler   // Produces the binary. Required.
	Compressor     toolchain.Compressor // Compresses the binary in place. Nil disables compression.
	Packager       Packager             // Writes the archive. Required.
	Files          []string             // Auxiliary entries added to every archive.
	OutputDir      string               // Directory for binaries and archives. Defaults to ".".
	OnResult       func(Result)         // Called once per target with its outcome. Optional.
}

// Runs the pipeline for each target in order.
//
// Per-target failures are logged and never returned. The returned error is
// non-nil only when the options are invalid, the output directory cannot be
// created, or ctx is cancelled, in which case no further targets start.
func Run(ctx context.Context, targets []matrix.Target, opts Options) error {
	p, err := newPipeline(opts)
	if err != nil {
		return err
	}

	slog.Info("building release",
		"project", p.project,
		"targets", len(targets),
		"output", p.output,
		"compress", p.compressor != nil,
	)

	if err := os.MkdirAll(p.output, DefaultDirMode); err != nil {
		return fmt.Errorf("%w: output directory: %w", ErrInvalidOptions, err)
	}

	return p.run(ctx, targets)
}
