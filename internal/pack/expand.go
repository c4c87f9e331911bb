package pack

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Characters that make an auxiliary entry a glob pattern.
const globMeta = "*?[{"

// Resolves an auxiliary entry to the regular files it contributes.
//
// Glob patterns are expanded with doublestar syntax ("docs/**/*.md"); a
// pattern matching nothing is an error. Each path is then resolved on its
// own: a regular file contributes itself, a directory contributes every
// regular file beneath it in lexical order, and anything else is an error
// wrapping [ErrPackaging].
//
// Files inside a directory that cannot be read are returned in skipped and
// do not stop the walk.
func expand(entry string) (files []string, skipped []error, err error) {
	paths := []string{entry}

	if strings.ContainsAny(entry, globMeta) {
		matches, err := doublestar.FilepathGlob(entry)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: pattern %s: %w", ErrPackaging, entry, err)
		}
		if len(matches) == 0 {
			return nil, nil, fmt.Errorf("%w: pattern %s matched nothing", ErrPackaging, entry)
		}
		paths = matches
	}

	for _, path := range paths {
		resolved, bad, err := resolve(path)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, resolved...)
		skipped = append(skipped, bad...)
	}
	return files, skipped, nil
}

// Resolves one path to the regular files it contributes.
func resolve(path string) ([]string, []error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	switch {
	case info.Mode().IsRegular():
		return []string{path}, nil, nil
	case info.IsDir():
		return walkFiles(path)
	default:
		return nil, nil, fmt.Errorf("%w: %s is neither a file nor a directory", ErrPackaging, path)
	}
}

// Returns the regular files beneath dir, following symlinks to files.
//
// Entries that cannot be read (dangling symlinks, unreadable directories)
// and special files are reported in skipped; the rest of dir is still
// walked.
func walkFiles(dir string) (files []string, skipped []error, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			skipped = append(skipped, fmt.Errorf("%w: %w", ErrPackaging, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%w: %w", ErrPackaging, err))
			return nil
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		} else {
			skipped = append(skipped, fmt.Errorf("%w: %s is not a regular file", ErrPackaging, path))
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrPackaging, dir, err)
	}
	return files, skipped, nil
}
