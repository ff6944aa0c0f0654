package backup

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"mergehelper/internal/logging"
)

func writeTitle(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "GameA")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func equalNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestBeginMovesAllArtifacts(t *testing.T) {
	dir := writeTitle(t, map[string]string{
		"GameA (Track 1).bin": "t1",
		"GameA (Track 2).bin": "t2",
		"GameA.cue":           "cue",
		"cover.jpg":           "art",
	})
	coord := NewCoordinator("orig", logging.NewNop())

	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if got := listNames(t, dir); !equalNames(got, []string{"cover.jpg", "orig"}) {
		t.Fatalf("title dir after backup: %v", got)
	}
	want := []string{"GameA (Track 1).bin", "GameA (Track 2).bin", "GameA.cue"}
	if got := listNames(t, handle.Dir()); !equalNames(got, want) {
		t.Fatalf("backup dir: %v, want %v", got, want)
	}

	data, err := os.ReadFile(handle.Path("GameA.cue"))
	if err != nil || string(data) != "cue" {
		t.Fatalf("cue content: %q, %v", data, err)
	}
}

func TestBeginRefusesPopulatedBackupDir(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	if err := os.MkdirAll(filepath.Join(dir, "orig"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "orig", "old.bin"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	coord := NewCoordinator("orig", logging.NewNop())

	_, err := coord.Begin(dir)
	if !errors.Is(err, ErrBackupExists) {
		t.Fatalf("expected ErrBackupExists, got %v", err)
	}

	// Nothing may have moved.
	if got := listNames(t, dir); !equalNames(got, []string{"a.bin", "a.cue", "b.bin", "orig"}) {
		t.Fatalf("title dir mutated: %v", got)
	}
}

func TestBeginReusesEmptyBackupDir(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	if err := os.MkdirAll(filepath.Join(dir, "orig"), 0o755); err != nil {
		t.Fatal(err)
	}
	coord := NewCoordinator("orig", logging.NewNop())

	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := listNames(t, handle.Dir()); !equalNames(got, []string{"a.bin", "a.cue", "b.bin"}) {
		t.Fatalf("backup dir: %v", got)
	}
}

func TestRestoreBringsBackOriginals(t *testing.T) {
	dir := writeTitle(t, map[string]string{
		"GameA (Track 1).bin": "t1",
		"GameA (Track 2).bin": "t2",
		"GameA.cue":           "cue",
	})
	coord := NewCoordinator("orig", logging.NewNop())
	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Simulate partial merge output.
	if err := os.WriteFile(filepath.Join(dir, "GameA.bin"), []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := handle.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	want := []string{"GameA (Track 1).bin", "GameA (Track 2).bin", "GameA.cue"}
	if got := listNames(t, dir); !equalNames(got, want) {
		t.Fatalf("restored dir: %v, want %v", got, want)
	}
	data, err := os.ReadFile(filepath.Join(dir, "GameA (Track 1).bin"))
	if err != nil || string(data) != "t1" {
		t.Fatalf("restored content: %q, %v", data, err)
	}
	if _, err := os.Stat(handle.Dir()); !os.IsNotExist(err) {
		t.Fatalf("backup dir should be gone: %v", err)
	}
}

func TestRestoreWithoutPartialOutput(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	coord := NewCoordinator("orig", logging.NewNop())
	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := handle.Restore(); err != nil {
		t.Fatalf("Restore with no partial output: %v", err)
	}
	if got := listNames(t, dir); !equalNames(got, []string{"a.bin", "a.cue", "b.bin"}) {
		t.Fatalf("restored dir: %v", got)
	}
}

func TestCommitPurge(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	coord := NewCoordinator("orig", logging.NewNop())
	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := handle.Commit(true); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, err := os.Stat(handle.Dir()); !os.IsNotExist(err) {
		t.Fatalf("backup dir should be purged: %v", err)
	}
}

func TestCommitRetain(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	coord := NewCoordinator("orig", logging.NewNop())
	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := handle.Commit(false); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := listNames(t, handle.Dir()); !equalNames(got, []string{"a.bin", "a.cue", "b.bin"}) {
		t.Fatalf("retained backup dir: %v", got)
	}
}

func TestHandleFinalizedOnce(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	coord := NewCoordinator("orig", logging.NewNop())
	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := handle.Commit(false); err != nil {
		t.Fatal(err)
	}
	if err := handle.Restore(); !errors.Is(err, ErrFinalized) {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
	if err := handle.Commit(true); !errors.Is(err, ErrFinalized) {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
}

func TestBeginDefaultsDirName(t *testing.T) {
	dir := writeTitle(t, map[string]string{"a.bin": "1", "b.bin": "2", "a.cue": "c"})
	coord := NewCoordinator("", logging.NewNop())
	handle, err := coord.Begin(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(handle.Dir()) != "orig" {
		t.Fatalf("backup dir = %s", handle.Dir())
	}
}
