package history

import "time"

// Run is one recorded sweep over a root directory.
type Run struct {
	ID          string
	RootDir     string
	Purge       bool
	StartedAt   time.Time
	FinishedAt  time.Time
	TitlesTotal int
	Merged      int
	Skipped     int
	Failed      int
}

// TitleResult is the recorded outcome for one title within a run.
type TitleResult struct {
	RunID      string
	Position   int
	Title      string
	Outcome    string
	Detail     string
	DurationMS int64
}
