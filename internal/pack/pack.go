package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/flate"
	"github.com/opencontainers/go-digest"

	"github.com/cruciblehq/cruxrel/internal/paths"
)

// Deflate level used for every archive member.
const CompressionLevel = 5

// Extension of release archives.
const Extension = ".zip"

// Writes release archives.
type Packager struct {
	Checksums bool // Write a "<archive>.sha256" file next to each archive.
}

// Describes a written archive.
type Archive struct {
	Path     string        // Location of the archive.
	Entries  []string      // Member names in the order they were written.
	Size     int64         // Archive size in bytes.
	Digest   digest.Digest // SHA-256 digest of the archive.
	Checksum string        // Path of the checksum file, empty when not written.
	Warnings error         // Skipped auxiliary entries, nil when none were skipped.
}

// Writes an archive at archivePath holding the auxiliary entries and, last,
// the binary.
//
// Each auxiliary entry is a file, a directory, or a glob pattern. Members
// are named by their base name only. When two members share a base name the
// first one wins and later ones are skipped; the binary's name is reserved
// up front. Skipped entries are logged and collected in [Archive.Warnings].
//
// The archive is written to a temporary file in the destination directory
// and renamed into place, so a failed call never leaves a partial archive.
func (p *Packager) Pack(binary, archivePath string, aux []string) (*Archive, error) {
	info, err := os.Stat(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: binary: %w", ErrPackaging, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: binary %s is not a regular file", ErrPackaging, binary)
	}

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), "."+filepath.Base(archivePath)+".*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	digester := digest.Canonical.Digester()
	w := newArchiveWriter(io.MultiWriter(tmp, digester.Hash()))

	archive := &Archive{Path: archivePath}
	var warnings *multierror.Error

	for _, entry := range aux {
		files, skipped, err := expand(entry)
		if err != nil {
			slog.Warn("skipping auxiliary entry", "entry", entry, "error", err)
			warnings = multierror.Append(warnings, err)
			continue
		}
		for _, err := range skipped {
			slog.Warn("skipping auxiliary file", "entry", entry, "error", err)
			warnings = multierror.Append(warnings, err)
		}
		for _, file := range files {
			if err := w.add(file, filepath.Base(file), filepath.Base(binary)); err != nil {
				if isSkip(err) {
					slog.Warn("skipping auxiliary entry", "entry", file, "error", err)
					warnings = multierror.Append(warnings, err)
					continue
				}
				return nil, fmt.Errorf("%w: %w", ErrPackaging, err)
			}
		}
	}

	if err := w.add(binary, filepath.Base(binary), ""); err != nil {
		return nil, fmt.Errorf("%w: binary: %w", ErrPackaging, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	if err := os.Chmod(tmp.Name(), paths.DefaultFileMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	if err := os.Rename(tmp.Name(), archivePath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	committed = true

	archive.Entries = w.names
	archive.Size = w.size
	archive.Digest = digester.Digest()
	archive.Warnings = warnings.ErrorOrNil()

	if p.Checksums {
		path, err := WriteChecksum(archive)
		if err != nil {
			return archive, err
		}
		archive.Checksum = path
	}

	return archive, nil
}

// Wraps a zip writer, tracking member names and the bytes written.
type archiveWriter struct {
	*zip.Writer
	counter *countingWriter
	names   []string
	seen    map[string]struct{}
	size    int64
}

// Creates an [archiveWriter] emitting deflate streams at [CompressionLevel].
func newArchiveWriter(dst io.Writer) *archiveWriter {
	counter := &countingWriter{w: dst}
	zw := zip.NewWriter(counter)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, CompressionLevel)
	})
	return &archiveWriter{Writer: zw, counter: counter, seen: make(map[string]struct{})}
}

// Marks a skippable condition while adding a member.
type skipError struct{ err error }

func (e *skipError) Error() string { return e.err.Error() }
func (e *skipError) Unwrap() error { return e.err }

// Reports whether err marks a skipped member rather than a write failure.
func isSkip(err error) bool {
	_, ok := err.(*skipError)
	return ok
}

// Adds the file at hostPath as member name.
//
// A name already present, or equal to reserved, is a skip. The file mode is
// kept so the binary stays executable when extracted.
func (w *archiveWriter) add(hostPath, name, reserved string) error {
	if _, dup := w.seen[name]; dup || name == reserved {
		return &skipError{fmt.Errorf("%w: duplicate member %s from %s", ErrPackaging, name, hostPath)}
	}

	f, err := os.Open(hostPath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, f); err != nil {
		return err
	}

	w.seen[name] = struct{}{}
	w.names = append(w.names, name)
	return nil
}

// Flushes the central directory and records the final archive size.
func (w *archiveWriter) Close() error {
	if err := w.Writer.Close(); err != nil {
		return err
	}
	w.size = w.counter.n
	return nil
}

// Counts bytes passed through to an underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
