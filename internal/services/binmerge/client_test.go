package binmerge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mergehelper/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	lines  []string
	err    error
	block  bool
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	f.binary = binary
	f.args = args
	for _, line := range f.lines {
		onLine(line)
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func TestMergeBuildsCommand(t *testing.T) {
	fake := &fakeExecutor{lines: []string{"[+] merged 2 tracks"}}
	client, err := New("python3", "/opt/binmerge", 60, WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := client.Merge(context.Background(), "/roms/GameA/orig/GameA.cue", "GameA", "/roms/GameA")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if fake.binary != "python3" {
		t.Fatalf("binary = %q", fake.binary)
	}
	want := []string{"/opt/binmerge", "/roms/GameA/orig/GameA.cue", "GameA", "-o", "/roms/GameA"}
	if strings.Join(fake.args, " ") != strings.Join(want, " ") {
		t.Fatalf("args = %v, want %v", fake.args, want)
	}
	if len(lines) != 1 || lines[0] != "[+] merged 2 tracks" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestMergeFailureKeepsOutput(t *testing.T) {
	fake := &fakeExecutor{
		lines: []string{"[-] cue parse error"},
		err:   errors.New("exit status 1"),
	}
	client, err := New("python3", "/opt/binmerge", 0, WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := client.Merge(context.Background(), "a.cue", "GameA", "/out")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if len(lines) != 1 || lines[0] != "[-] cue parse error" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestMergeTimeout(t *testing.T) {
	fake := &fakeExecutor{block: true}
	client, err := New("python3", "/opt/binmerge", 0, WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}
	client.timeout = 10 * time.Millisecond

	_, err = client.Merge(context.Background(), "a.cue", "GameA", "/out")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestMergeValidatesArguments(t *testing.T) {
	client, err := New("python3", "/opt/binmerge", 0, WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name             string
		cue, output, dir string
	}{
		{"missing cue", "", "GameA", "/out"},
		{"missing name", "a.cue", "", "/out"},
		{"missing dir", "a.cue", "GameA", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := client.Merge(context.Background(), tc.cue, tc.output, tc.dir); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New("", "/opt/binmerge", 0); err == nil {
		t.Fatal("expected error for empty python binary")
	}
	if _, err := New("python3", "", 0); err == nil {
		t.Fatal("expected error for empty script path")
	}
}
