package collision

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveFreePathUnchanged(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "file.txt")
	if got := Resolve(want); got != want {
		t.Errorf("Resolve(%q) = %q, want unchanged", want, got)
	}
}

func TestResolveInsertsDisambiguatorBeforeExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "file.txt"))

	got := Resolve(filepath.Join(dir, "file.txt"))
	want := filepath.Join(dir, "file(1).txt")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveUsesSmallestUnusedIndex(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "file.txt"))
	touch(t, filepath.Join(dir, "file(1).txt"))
	touch(t, filepath.Join(dir, "file(3).txt")) // gap at 2 must be taken

	got := Resolve(filepath.Join(dir, "file.txt"))
	want := filepath.Join(dir, "file(2).txt")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveNoExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "README"))

	got := Resolve(filepath.Join(dir, "README"))
	want := filepath.Join(dir, "README(1)")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDotfile(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, ".bashrc"))

	// A name that is nothing but its extension gets the suffix appended,
	// not ".(1)bashrc".
	got := Resolve(filepath.Join(dir, ".bashrc"))
	want := filepath.Join(dir, ".bashrc(1)")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBackupPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "file.txt")
	touch(t, src)

	if got, want := BackupPath(src), src+".bak"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// The disambiguator goes after the .bak suffix, not before the
	// original extension.
	touch(t, src+".bak")
	if got, want := BackupPath(src), src+".bak(1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	touch(t, src+".bak(1)")
	if got, want := BackupPath(src), src+".bak(2)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveNeverReturnsExistingPath(t *testing.T) {
	dir := t.TempDir()
	desired := filepath.Join(dir, "doc.pdf")
	touch(t, desired)
	for i := 0; i < 10; i++ {
		got := Resolve(desired)
		if Exists(got) {
			t.Fatalf("Resolve returned existing path %q", got)
		}
		touch(t, got)
		if want := filepath.Join(dir, fmt.Sprintf("doc(%d).pdf", i+1)); got != want {
			t.Fatalf("iteration %d: got %q, want %q", i, got, want)
		}
	}
}
