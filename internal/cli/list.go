package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cruciblehq/cruxrel/internal/release"
)

// Represents the 'cruxrel list' command.
type ListCmd struct{}

// Executes the list command.
func (c *ListCmd) Run(ctx context.Context) error {
	cfg, err := loadRelease()
	if err != nil {
		return err
	}
	return printMatrix(os.Stdout, cfg)
}

// Writes one line per target: its index, archive base name and variables.
func printMatrix(w io.Writer, cfg *release.Config) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, t := range cfg.Matrix.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, t.ArchiveBaseName(cfg.Project), t)
	}
	return tw.Flush()
}
