package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"mergehelper/internal/testsupport"
)

func TestRecordAndListRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	started := time.Now().Add(-time.Minute)
	run := Run{
		ID:          uuid.NewString(),
		RootDir:     cfg.Paths.RootDir,
		Purge:       true,
		StartedAt:   started,
		FinishedAt:  started.Add(30 * time.Second),
		TitlesTotal: 3,
		Merged:      1,
		Skipped:     1,
		Failed:      1,
	}
	results := []TitleResult{
		{Title: "GameA", Outcome: "merge-succeeded-purged", DurationMS: 1200},
		{Title: "GameB", Outcome: "ambiguous-cue-skip", Detail: "2 cue sheets"},
		{Title: "GameC", Outcome: "merge-failed-rolled-back", Detail: "exit status 1"},
	}

	if err := store.RecordRun(context.Background(), run, results); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || !got.Purge || got.TitlesTotal != 3 || got.Merged != 1 {
		t.Fatalf("run mismatch: %+v", got)
	}
	if got.StartedAt.Unix() != started.Unix() {
		t.Fatalf("started_at mismatch: %v vs %v", got.StartedAt, started)
	}

	stored, err := store.ListResults(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("got %d results, want 3", len(stored))
	}
	if stored[0].Title != "GameA" || stored[0].Position != 0 {
		t.Fatalf("first result: %+v", stored[0])
	}
	if stored[1].Detail != "2 cue sheets" {
		t.Fatalf("second result: %+v", stored[1])
	}
}

func TestListRunsOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			ID:         uuid.NewString(),
			RootDir:    "/roms",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		if err := store.RecordRun(context.Background(), run, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Fatalf("runs not newest first: %v, %v", runs[0].StartedAt, runs[1].StartedAt)
	}
}

func TestRecordRunRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.RecordRun(context.Background(), Run{}, nil); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	again, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again.Close()
}
