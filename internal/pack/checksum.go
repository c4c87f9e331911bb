package pack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/cruxrel/internal/paths"
)

// Extension of checksum files written next to archives.
const ChecksumExtension = ".sha256"

// Writes "<archive>.sha256" in the format of sha256sum ("<hex>  <name>")
// and returns its path.
func WriteChecksum(a *Archive) (string, error) {
	if err := a.Digest.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrChecksum, a.Path, err)
	}

	path := a.Path + ChecksumExtension
	line := fmt.Sprintf("%s  %s\n", a.Digest.Encoded(), filepath.Base(a.Path))
	if err := os.WriteFile(path, []byte(line), paths.DefaultFileMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrChecksum, err)
	}
	return path, nil
}
