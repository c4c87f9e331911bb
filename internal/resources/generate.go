package resources

import (
	"context"
	"fmt"
	"os"

	"github.com/cruciblehq/cruxrel/internal/toolchain"
)

// Runs a generate resource's command and checks that it produced the
// destination file.
//
// A stale destination is removed first so that a command which exits
// cleanly without writing anything is detected.
func (p *Preparer) generate(ctx context.Context, r Resource) error {
	if len(r.Command) == 0 {
		return fmt.Errorf("empty command")
	}

	dest := p.destPath(r)

	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return err
	}

	if _, err := toolchain.Run(ctx, p.Environ, p.Dir, nil, os.Stderr, r.Command[0], r.Command[1:]...); err != nil {
		return err
	}

	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotProduced, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotProduced, dest)
	}
	return nil
}
