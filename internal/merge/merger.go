package merge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	kmerrors "kiro.dev/kiro-merge/internal/errors"
	"kiro.dev/kiro-merge/internal/output"
)

// Options are the inputs of one merge
type Options struct {
	Source string
	Dest   string
	DryRun bool
}

// Merger runs the merge procedure: copy when the destination is missing,
// otherwise back it up and apply the first strategy that succeeds.
type Merger struct {
	Splog    *output.Splog
	Resolver Resolver
	// Now stamps backup file names
	Now func() time.Time
}

// NewMerger creates a Merger that logs to splog and takes its strategies from resolver
func NewMerger(splog *output.Splog, resolver Resolver) *Merger {
	return &Merger{
		Splog:    splog,
		Resolver: resolver,
		Now:      time.Now,
	}
}

// Run merges opts.Source into opts.Dest and reports the single outcome.
// A missing source returns a SourceNotFoundError. Copy, backup and append
// failures are returned as is and nothing further is attempted.
func (m *Merger) Run(ctx context.Context, opts Options) (*Report, error) {
	srcInfo, err := os.Stat(opts.Source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kmerrors.NewSourceNotFoundError(opts.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", opts.Source, err)
	}
	if srcInfo.IsDir() {
		return nil, fmt.Errorf("src is a directory: %s", opts.Source)
	}

	report := &Report{
		Source: opts.Source,
		Dest:   opts.Dest,
		DryRun: opts.DryRun,
	}

	destInfo, err := os.Stat(opts.Dest)
	if errors.Is(err, fs.ErrNotExist) {
		return m.copyFresh(report)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", opts.Dest, err)
	}
	if destInfo.IsDir() {
		return nil, fmt.Errorf("dest is a directory: %s", opts.Dest)
	}

	backupPath, err := nextBackupPath(opts.Dest, m.Now())
	if err != nil {
		return nil, err
	}
	report.BackupPath = backupPath

	if opts.DryRun {
		return m.planDryRun(report)
	}

	if err := copyFile(opts.Dest, backupPath); err != nil {
		return nil, fmt.Errorf("backup failed: %w", err)
	}
	m.Splog.Info("Backed up: %s -> %s (%s)",
		output.ColorPath(opts.Dest), output.ColorPath(backupPath), humanize.Bytes(uint64(destInfo.Size())))

	return m.applyStrategies(ctx, report)
}

func (m *Merger) copyFresh(report *Report) (*Report, error) {
	if report.DryRun {
		report.Outcome = OutcomeDryRun
		m.Splog.Info("%s would copy: %s -> %s", output.ColorMuted("[dry-run]"), report.Source, report.Dest)
		return report, nil
	}

	if err := copyFile(report.Source, report.Dest); err != nil {
		return nil, err
	}
	report.Outcome = OutcomeCopied
	m.Splog.Info("%s %s -> %s", output.ColorSuccess("Copied:"), report.Source, output.ColorPath(report.Dest))
	return report, nil
}

// planDryRun reports what a real run would do without writing anything and
// without probing git.
func (m *Merger) planDryRun(report *Report) (*Report, error) {
	report.Outcome = OutcomeDryRun
	m.Splog.Info("%s would backup: %s -> %s", output.ColorMuted("[dry-run]"), report.Dest, report.BackupPath)

	for _, path := range []string{report.Source, report.Dest} {
		text, err := IsTextFile(path)
		if err != nil {
			return nil, err
		}
		if !text {
			report.Detail = kmerrors.NewEncodingMismatchError(path)
			m.Splog.Info("%s would skip merge (binary or non-text): %s -> %s",
				output.ColorMuted("[dry-run]"), report.Source, report.Dest)
			return report, nil
		}
	}

	m.Splog.Info("%s would merge: %s -> %s (git 3-way merge if tracked, otherwise unique-line append)",
		output.ColorMuted("[dry-run]"), report.Source, report.Dest)
	return report, nil
}

func (m *Merger) applyStrategies(ctx context.Context, report *Report) (*Report, error) {
	req := Request{Source: report.Source, Dest: report.Dest}

	for _, strategy := range m.Resolver.Resolve(ctx, report.Dest) {
		result, err := strategy.Apply(ctx, req)
		if err != nil {
			if errors.Is(err, kmerrors.ErrVersionControlUnavailable) {
				m.Splog.Info("%s attempt failed; falling back: %v", strategy.Name(), err)
				continue
			}
			return nil, err
		}

		report.Strategy = strategy.Name()
		report.Outcome = result.Outcome
		report.Appended = result.Appended
		report.Detail = result.Detail
		m.reportOutcome(report)
		return report, nil
	}

	return nil, fmt.Errorf("no merge strategy could be applied to %s", report.Dest)
}

func (m *Merger) reportOutcome(report *Report) {
	src, dest := report.Source, output.ColorPath(report.Dest)

	switch report.Outcome {
	case OutcomeMergedClean:
		m.Splog.Info("%s %s -> %s", output.ColorSuccess("Applied git 3-way merge:"), src, dest)
	case OutcomeMergedConflicted:
		m.Splog.Info("%s %s -> %s (conflict markers may be present)",
			output.ColorWarn("Applied git 3-way merge with conflicts:"), src, dest)
		var conflict *kmerrors.MergeConflictError
		if errors.As(report.Detail, &conflict) && conflict.Output != "" {
			m.Splog.Info("%s", strings.TrimRight(conflict.Output, "\n"))
		}
	case OutcomeAppended:
		m.Splog.Info("%s %s -> %s (appended %d lines)", output.ColorSuccess("Merged (unique-append):"), src, dest, report.Appended)
	case OutcomeNoNewLines:
		m.Splog.Info("%s %s -> %s", output.ColorMuted("No new unique lines to append:"), src, dest)
	case OutcomeSkippedBinary:
		m.Splog.Info("%s %s -> %s", output.ColorWarn("Skipped merge (binary or non-text):"), src, dest)
	}
}
