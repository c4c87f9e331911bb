// Package pack assembles release archives.
//
// A [Packager] writes one zip archive per target holding the auxiliary
// release files followed by the compiled binary. Directory structure is not
// preserved: a directory entry contributes every regular file beneath it
// under its base name, so all members of an archive live at its root.
//
// Auxiliary entries are optional by nature. An entry that does not exist,
// or that is neither a regular file nor a directory, is skipped with a
// warning and recorded in [Archive.Warnings]; the archive is still written.
// Only a missing binary or an I/O error while writing fails the archive.
//
// Example usage:
//
//	p := &pack.Packager{}
//	a, err := p.Pack("demo.exe", "demo-windows-amd64.zip", []string{"README.md", "LICENSE", "docs"})
//	if err != nil {
//	    return err
//	}
//	slog.Info("archive written", "path", a.Path, "digest", a.Digest)
package pack
