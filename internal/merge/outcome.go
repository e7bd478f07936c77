package merge

// Outcome is the terminal result of one merge invocation
type Outcome int

const (
	// OutcomeCopied means the destination did not exist and the source was copied
	OutcomeCopied Outcome = iota
	// OutcomeMergedClean means a three-way merge applied without conflicts
	OutcomeMergedClean
	// OutcomeMergedConflicted means a three-way merge wrote conflict markers
	OutcomeMergedConflicted
	// OutcomeAppended means unique source lines were appended
	OutcomeAppended
	// OutcomeSkippedBinary means one side was not UTF-8 text
	OutcomeSkippedBinary
	// OutcomeNoNewLines means the destination already held every source line
	OutcomeNoNewLines
	// OutcomeDryRun means the action was only reported
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeMergedClean:
		return "merged-clean"
	case OutcomeMergedConflicted:
		return "merged-conflicted"
	case OutcomeAppended:
		return "appended"
	case OutcomeSkippedBinary:
		return "skipped-binary"
	case OutcomeNoNewLines:
		return "no-new-lines"
	case OutcomeDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// Modified reports whether the outcome changed the destination's content.
func (o Outcome) Modified() bool {
	switch o {
	case OutcomeCopied, OutcomeMergedClean, OutcomeMergedConflicted, OutcomeAppended:
		return true
	default:
		return false
	}
}

// Report describes what a Merger did
type Report struct {
	Source string
	Dest   string
	DryRun bool

	Outcome Outcome
	// Strategy names the strategy that produced the outcome, empty for copies and dry-runs.
	Strategy string
	// BackupPath is empty when no backup was taken.
	BackupPath string
	// Appended counts lines added by the unique-line strategy.
	Appended int
	// Detail carries a MergeConflictError or EncodingMismatchError for
	// non-fatal outcomes.
	Detail error
}
