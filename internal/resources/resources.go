package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/cruciblehq/cruxrel/internal/paths"
)

const (

	// Default first retry delay for downloads.
	DefaultInitialInterval = 500 * time.Millisecond

	// Default total time spent retrying a download.
	DefaultMaxElapsedTime = time.Minute
)

// How a resource is obtained.
type Kind int

const (
	Download Kind = iota + 1 // Fetched over HTTP.
	Generate                 // Written by a command.
)

// Returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Download:
		return "download"
	case Generate:
		return "generate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// One auxiliary file to prepare before the build.
type Resource struct {
	Kind    Kind     // Download or Generate.
	URL     string   // Source URL (Download only).
	Command []string // Command and arguments (Generate only).
	Dest    string   // Path the file must end up at.
}

// Returns a short description for logs.
func (r Resource) String() string {
	if r.Kind == Generate {
		return strings.Join(r.Command, " ")
	}
	return r.URL
}

// Prepares resources.
type Preparer struct {
	Client          *http.Client  // HTTP client for downloads. Defaults to a cleanhttp client.
	CacheDir        string        // Download cache. Empty disables caching.
	Refresh         bool          // Ignore cached downloads.
	Environ         []string      // Environment of generate commands. Nil inherits the process environment.
	Dir             string        // Working directory of generate commands and base of relative destinations.
	InitialInterval time.Duration // First retry delay. Defaults to [DefaultInitialInterval].
	MaxElapsedTime  time.Duration // Total retry budget. Defaults to [DefaultMaxElapsedTime].
}

// Creates a [Preparer] caching downloads under the user cache directory.
func NewPreparer(environ []string) *Preparer {
	return &Preparer{
		Client:   cleanhttp.DefaultClient(),
		CacheDir: paths.Downloads(),
		Environ:  slices.Clone(environ),
	}
}

// Prepares each resource in order, stopping at the first failure.
func (p *Preparer) Prepare(ctx context.Context, resources []Resource) error {
	for _, r := range resources {
		slog.Info("preparing resource", "kind", r.Kind.String(), "source", r.String(), "dest", r.Dest)

		var err error
		switch r.Kind {
		case Download:
			err = p.download(ctx, r)
		case Generate:
			err = p.generate(ctx, r)
		default:
			err = fmt.Errorf("unknown resource kind %d", int(r.Kind))
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrResource, r.Dest, err)
		}
	}
	return nil
}

// Returns the destination of r, resolved against the working directory.
func (p *Preparer) destPath(r Resource) string {
	if p.Dir != "" && !filepath.IsAbs(r.Dest) {
		return filepath.Join(p.Dir, r.Dest)
	}
	return r.Dest
}

// Writes data to path through a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), paths.DefaultFileMode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
