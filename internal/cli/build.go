package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cruciblehq/cruxrel/internal/build"
	"github.com/cruciblehq/cruxrel/internal/pack"
	"github.com/cruciblehq/cruxrel/internal/release"
	"github.com/cruciblehq/cruxrel/internal/resources"
	"github.com/cruciblehq/cruxrel/internal/toolchain"
)

// Represents the 'cruxrel build' command.
type BuildCmd struct {
	Target        string `arg:"" optional:"" help:"Index of a single target to build (see 'cruxrel list')." placeholder:"INDEX"`
	NoCompress    bool   `help:"Do not compress binaries."`
	SkipResources bool   `help:"Do not prepare release resources."`
	Refresh       bool   `help:"Download resources even when cached."`
	OutputDir     string `short:"o" default:"." help:"Directory for binaries and archives." placeholder:"DIR" type:"path"`
}

// Executes the build command.
//
// Selection and resource preparation happen before any target is built; a
// failure in either ends the run. Per-target failures are logged and
// summarized on stdout but do not fail the command.
func (c *BuildCmd) Run(ctx context.Context) error {
	cfg, err := loadRelease()
	if err != nil {
		return err
	}

	targets, err := cfg.Matrix.Select(c.Target)
	if err != nil {
		return err
	}

	environ := os.Environ()

	if !c.SkipResources && len(cfg.Resources) > 0 {
		prep := resources.NewPreparer(environ)
		prep.Refresh = c.Refresh
		if err := prep.Prepare(ctx, cfg.Resources); err != nil {
			return err
		}
	}

	s := &summary{out: os.Stdout}
	if err := build.Run(ctx, targets, c.options(cfg, environ, s.record)); err != nil {
		return err
	}

	s.log()
	return nil
}

// Translates a release configuration into pipeline options.
func (c *BuildCmd) options(cfg *release.Config, environ []string, onResult func(build.Result)) build.Options {
	compiler := toolchain.NewGoCompiler(cfg.Package, cfg.Flags)
	compiler.Stderr = os.Stderr

	opts := build.Options{
		Project:        cfg.Project,
		Binary:         cfg.Binary,
		SuffixPlatform: cfg.SuffixPlatform,
		Suffix:         cfg.Suffix,
		Base:           build.NewEnv(environ),
		Toggles:        cfg.Env,
		Compiler:       compiler,
		Packager:       &pack.Packager{Checksums: cfg.Checksums},
		Files:          cfg.Files,
		OutputDir:      c.OutputDir,
		OnResult:       onResult,
	}
	if cfg.Compress.Enabled && !c.NoCompress {
		opts.Compressor = toolchain.NewUPX(cfg.Compress.Tool, cfg.Compress.Args)
	}
	return opts
}

// Collects per-target outcomes for the end-of-run report.
type summary struct {
	out      io.Writer
	built    int
	failed   int
	degraded int
}

// Prints one line for r and updates the counters.
func (s *summary) record(r build.Result) {
	switch {
	case r.Failed():
		s.failed++
		fmt.Fprintf(s.out, "FAIL  %s  %s: %v\n", r.Name, r.Stage, r.Err)
	case r.Degraded():
		s.built++
		s.degraded++
		fmt.Fprintf(s.out, "ok    %s  %s (compression %s)\n", r.Name, r.Archive.Path, r.Compression.Status)
	default:
		s.built++
		fmt.Fprintf(s.out, "ok    %s  %s\n", r.Name, r.Archive.Path)
	}
}

// Logs the totals, at warning level when any target failed.
func (s *summary) log() {
	level := slog.LevelInfo
	if s.failed > 0 {
		level = slog.LevelWarn
	}
	slog.Log(context.Background(), level, "release finished",
		"built", s.built,
		"failed", s.failed,
		"uncompressed", s.degraded,
	)
}
