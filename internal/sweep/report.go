package sweep

import "time"

// TitleResult records what happened to one title.
type TitleResult struct {
	Title       string
	Dir         string
	Outcome     Outcome
	Detail      string
	MergeOutput []string
	Duration    time.Duration
}

// Report aggregates a whole sweep.
type Report struct {
	RunID      string
	RootDir    string
	Purge      bool
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []TitleResult
}

// Duration returns the total sweep runtime.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Counts tallies merged, skipped, and failed titles.
func (r *Report) Counts() (merged, skipped, failed int) {
	for _, result := range r.Results {
		switch {
		case result.Outcome.Merged():
			merged++
		case result.Outcome.Failed():
			failed++
		default:
			skipped++
		}
	}
	return merged, skipped, failed
}

// RollbackFailures returns the results whose originals may be stranded.
// These demand operator attention before anything else touches the titles.
func (r *Report) RollbackFailures() []TitleResult {
	var stranded []TitleResult
	for _, result := range r.Results {
		if result.Outcome == OutcomeRollbackFailed {
			stranded = append(stranded, result)
		}
	}
	return stranded
}
