package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/cruciblehq/cruxrel/internal"
	"github.com/cruciblehq/cruxrel/internal/release"
)

// Level shared by every logger created by [NewLogger].
var logLevel = new(slog.LevelVar)

func init() {
	logLevel.Set(LogLevel())
}

// Represents the root command for cruxrel.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	File    string     `short:"f" help:"Release file (default: ${release_file})." placeholder:"PATH" type:"path"`
	Build   BuildCmd   `cmd:"" default:"withargs" help:"Build the release matrix or a single target."`
	List    ListCmd    `cmd:"" help:"List the targets of the release matrix."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Release-build orchestrator.\n\nCross-compiles a Go program for every target of a build matrix and packages each binary into a zip archive."),
		kong.UsageOnError(),
		kong.Vars{
			"version":      internal.VersionString(),
			"release_file": internal.DefaultReleaseFile(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Creates a logger writing colored, human-readable records to stderr.
//
// Color is disabled when stderr is not a terminal. The level is shared by
// every logger created here and follows [configureLogger].
func NewLogger(addSource bool) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		AddSource:  addSource,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// Returns the level selected by the debug and quiet switches.
func LogLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	logLevel.Set(LogLevel())
	slog.SetDefault(NewLogger(internal.IsVerbose()))
}

// Loads the release file selected by --file.
//
// Without --file, a missing default release file is not an error: the
// built-in configuration is used with the working directory name as the
// project.
func loadRelease() (*release.Config, error) {
	path, explicit := RootCmd.File, RootCmd.File != ""
	if !explicit {
		path = internal.DefaultReleaseFile()
	}

	cfg, err := release.Load(path)
	if err == nil {
		slog.Debug("loaded release file", "file", path, "project", cfg.Project)
		return cfg, nil
	}
	if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	project := filepath.Base(wd)
	slog.Info("no release file, using defaults", "file", path, "project", project)
	return release.Default(project), nil
}
