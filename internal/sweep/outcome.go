package sweep

// Outcome is the terminal state of one title after a sweep pass.
type Outcome string

const (
	// OutcomeNoTracks means the directory held no BIN files.
	OutcomeNoTracks Outcome = "no-tracks"
	// OutcomeSingleTrackSkip means a single BIN file needed no merge.
	OutcomeSingleTrackSkip Outcome = "single-track-skip"
	// OutcomeAmbiguousCueSkip means the cue sheet count made the merge target
	// undeterminable.
	OutcomeAmbiguousCueSkip Outcome = "ambiguous-cue-skip"
	// OutcomeBackupSkip means a populated backup directory from an earlier run
	// blocked the merge.
	OutcomeBackupSkip Outcome = "backup-skip"
	// OutcomeBackupFailed means the originals could not be relocated; the
	// merge was never attempted.
	OutcomeBackupFailed Outcome = "backup-failed"
	// OutcomeMergeFailedRolledBack means the merge tool failed and the
	// original layout was restored.
	OutcomeMergeFailedRolledBack Outcome = "merge-failed-rolled-back"
	// OutcomeRollbackFailed means the merge failed AND the restore failed;
	// originals may be stranded in the backup directory.
	OutcomeRollbackFailed Outcome = "rollback-failed"
	// OutcomeMergeSucceededRetained means the merge succeeded and the
	// originals stay archived in the backup directory.
	OutcomeMergeSucceededRetained Outcome = "merge-succeeded-retained"
	// OutcomeMergeSucceededPurged means the merge succeeded and the originals
	// were deleted.
	OutcomeMergeSucceededPurged Outcome = "merge-succeeded-purged"
)

// Skipped reports whether the title was left untouched.
func (o Outcome) Skipped() bool {
	switch o {
	case OutcomeNoTracks, OutcomeSingleTrackSkip, OutcomeAmbiguousCueSkip, OutcomeBackupSkip:
		return true
	}
	return false
}

// Merged reports whether the title ended with a successful merge.
func (o Outcome) Merged() bool {
	return o == OutcomeMergeSucceededRetained || o == OutcomeMergeSucceededPurged
}

// Failed reports whether the title ended in a failure state.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeBackupFailed, OutcomeMergeFailedRolledBack, OutcomeRollbackFailed:
		return true
	}
	return false
}
