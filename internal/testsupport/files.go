package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the given content, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTitle lays out a title directory under root with the given files and
// returns the directory path. Content defaults to the file name so tests can
// verify byte-for-byte restores.
func WriteTitle(t testing.TB, root, title string, files ...string) string {
	t.Helper()

	dir := filepath.Join(root, title)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir title %s: %v", title, err)
	}
	for _, name := range files {
		WriteFile(t, filepath.Join(dir, name), []byte(name))
	}
	return dir
}

// Snapshot returns a map of file name to content for every regular file
// directly inside dir.
func Snapshot(t testing.TB, dir string) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	snap := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		snap[entry.Name()] = string(data)
	}
	return snap
}
