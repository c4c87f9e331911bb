package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/cruciblehq/cruxrel/internal"
)

const (

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the cache directory.
//
//	Linux:   $XDG_CACHE_HOME/cruxrel or ~/.cache/cruxrel
//	macOS:   ~/Library/Caches/cruxrel
//	Windows: %LOCALAPPDATA%\cruxrel
func Cache() string {
	return filepath.Join(xdg.CacheHome, internal.Name)
}

// Path to the directory holding downloaded release resources, keyed by the
// digest of their URL.
//
//	Linux:   $XDG_CACHE_HOME/cruxrel/downloads
//	macOS:   ~/Library/Caches/cruxrel/downloads
func Downloads() string {
	return filepath.Join(Cache(), "downloads")
}
