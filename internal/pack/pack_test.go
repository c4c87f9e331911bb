package pack

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"runtime"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/opencontainers/go-digest"

	"github.com/cruciblehq/cruxrel/internal/paths"
)

// Creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// Returns member name -> content of a zip archive, plus the member order.
func readArchive(t *testing.T, path string) (map[string]string, []string) {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer r.Close()

	contents := make(map[string]string)
	var order []string
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		contents[f.Name] = string(data)
		order = append(order, f.Name)
	}
	return contents, order
}

// Writes an executable fake binary and returns its path.
func writeBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("ELF"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPackBinaryLast(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"README.md": "readme", "LICENSE": "gpl"})
	bin := writeBinary(t, dir, "demo")

	out := filepath.Join(dir, "demo-linux-amd64.zip")
	a, err := (&Packager{}).Pack(bin, out, []string{
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "LICENSE"),
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if a.Warnings != nil {
		t.Fatalf("unexpected warnings: %v", a.Warnings)
	}

	contents, order := readArchive(t, out)
	if want := []string{"README.md", "LICENSE", "demo"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if !slices.Equal(a.Entries, order) {
		t.Fatalf("Entries = %v, archive holds %v", a.Entries, order)
	}
	if contents["demo"] != "ELF" || contents["LICENSE"] != "gpl" {
		t.Fatalf("contents = %v", contents)
	}
}

func TestPackFlattensDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"extra/a.txt":     "a",
		"extra/sub/b.txt": "b",
	})
	bin := writeBinary(t, dir, "demo")

	out := filepath.Join(dir, "demo.zip")
	if _, err := (&Packager{}).Pack(bin, out, []string{filepath.Join(dir, "extra")}); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	contents, order := readArchive(t, out)
	if want := []string{"a.txt", "b.txt", "demo"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for name := range contents {
		if strings.Contains(name, "/") {
			t.Fatalf("member %q keeps directory structure", name)
		}
	}
	if contents["b.txt"] != "b" {
		t.Fatalf("b.txt = %q", contents["b.txt"])
	}
}

func TestPackArchiveMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	bin := writeBinary(t, dir, "demo")
	out := filepath.Join(dir, "demo.zip")

	if _, err := (&Packager{Checksums: true}).Pack(bin, out, nil); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	for _, path := range []string{out, out + ChecksumExtension} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := info.Mode().Perm(); got != paths.DefaultFileMode {
			t.Fatalf("%s mode = %v, want %v", filepath.Base(path), got, paths.DefaultFileMode)
		}
	}
}

func TestPackSkipsUnreadableFileInDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a.txt": "a", "docs/sub/b.txt": "b"})
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "docs", "dangling")); err != nil {
		t.Fatal(err)
	}
	bin := writeBinary(t, dir, "demo")

	out := filepath.Join(dir, "demo.zip")
	a, err := (&Packager{}).Pack(bin, out, []string{filepath.Join(dir, "docs")})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	_, order := readArchive(t, out)
	if want := []string{"a.txt", "b.txt", "demo"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	var merr *multierror.Error
	if !errors.As(a.Warnings, &merr) || len(merr.Errors) != 1 {
		t.Fatalf("Warnings = %v, want exactly one skipped file", a.Warnings)
	}
	if !errors.Is(a.Warnings, ErrPackaging) || !strings.Contains(a.Warnings.Error(), "dangling") {
		t.Fatalf("warning does not name the file: %v", a.Warnings)
	}
}

func TestPackSkipsMissingEntry(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"README.md": "readme", "LICENSE": "gpl"})
	bin := writeBinary(t, dir, "demo")

	out := filepath.Join(dir, "demo.zip")
	a, err := (&Packager{}).Pack(bin, out, []string{
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "chn.list"),
		filepath.Join(dir, "LICENSE"),
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	_, order := readArchive(t, out)
	if want := []string{"README.md", "LICENSE", "demo"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	if !errors.Is(a.Warnings, ErrPackaging) {
		t.Fatalf("Warnings = %v, want ErrPackaging", a.Warnings)
	}
	var merr *multierror.Error
	if !errors.As(a.Warnings, &merr) || len(merr.Errors) != 1 {
		t.Fatalf("Warnings = %v, want exactly one skipped entry", a.Warnings)
	}
	if !strings.Contains(a.Warnings.Error(), "chn.list") {
		t.Fatalf("warning does not name the entry: %v", a.Warnings)
	}
}

func TestPackDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"one/notes.txt": "first",
		"two/notes.txt": "second",
		"two/demo":      "not the binary",
	})
	bin := writeBinary(t, dir, "demo")

	out := filepath.Join(dir, "demo.zip")
	a, err := (&Packager{}).Pack(bin, out, []string{filepath.Join(dir, "one"), filepath.Join(dir, "two")})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	contents, order := readArchive(t, out)
	if want := []string{"notes.txt", "demo"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if contents["notes.txt"] != "first" || contents["demo"] != "ELF" {
		t.Fatalf("contents = %v", contents)
	}

	var merr *multierror.Error
	if !errors.As(a.Warnings, &merr) || len(merr.Errors) != 2 {
		t.Fatalf("Warnings = %v, want two duplicates", a.Warnings)
	}
}

func TestPackGlob(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"docs/guide.md":     "guide",
		"docs/api/index.md": "api",
		"docs/logo.png":     "png",
	})
	bin := writeBinary(t, dir, "demo")

	out := filepath.Join(dir, "demo.zip")
	a, err := (&Packager{}).Pack(bin, out, []string{
		filepath.Join(dir, "docs", "**", "*.md"),
		filepath.Join(dir, "*.nothing"),
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	contents, _ := readArchive(t, out)
	if _, ok := contents["logo.png"]; ok {
		t.Fatal("glob matched logo.png")
	}
	if contents["guide.md"] != "guide" || contents["index.md"] != "api" {
		t.Fatalf("contents = %v", contents)
	}
	if a.Warnings == nil {
		t.Fatal("empty glob did not produce a warning")
	}
}

func TestPackMissingBinary(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "demo.zip")

	_, err := (&Packager{}).Pack(filepath.Join(dir, "demo"), out, nil)
	if !errors.Is(err, ErrPackaging) {
		t.Fatalf("err = %v, want ErrPackaging", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("failed Pack left files behind: %v", entries)
	}
}

func TestPackKeepsBinaryMode(t *testing.T) {
	dir := t.TempDir()
	bin := writeBinary(t, dir, "demo")
	out := filepath.Join(dir, "demo.zip")

	if _, err := (&Packager{}).Pack(bin, out, nil); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if mode := r.File[0].Mode().Perm(); mode&0100 == 0 {
		t.Fatalf("binary mode = %v, want executable", mode)
	}
	if r.File[0].Method != zip.Deflate {
		t.Fatalf("method = %d, want deflate", r.File[0].Method)
	}
}

func TestPackDigestAndChecksum(t *testing.T) {
	dir := t.TempDir()
	bin := writeBinary(t, dir, "demo")
	out := filepath.Join(dir, "demo-linux-amd64.zip")

	a, err := (&Packager{Checksums: true}).Pack(bin, out, nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want, err := digest.FromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	if a.Digest != want {
		t.Fatalf("Digest = %s, want %s", a.Digest, want)
	}

	info, _ := os.Stat(out)
	if a.Size != info.Size() {
		t.Fatalf("Size = %d, want %d", a.Size, info.Size())
	}

	if a.Checksum != out+ChecksumExtension {
		t.Fatalf("Checksum = %q", a.Checksum)
	}
	line, err := os.ReadFile(a.Checksum)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(line), want.Encoded()+"  demo-linux-amd64.zip\n"; got != want {
		t.Fatalf("checksum line = %q, want %q", got, want)
	}
}

func TestExpandRejectsNonRegular(t *testing.T) {
	if _, err := os.Stat("/dev/null"); err != nil {
		t.Skip("/dev/null not available")
	}
	_, _, err := expand("/dev/null")
	if !errors.Is(err, ErrPackaging) {
		t.Fatalf("err = %v, want ErrPackaging", err)
	}
}
