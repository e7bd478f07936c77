package git

import (
	"context"
	"errors"
	"strings"

	kmerrors "kiro.dev/kiro-merge/internal/errors"
)

// git merge-file exits with the number of conflicts, capped at this value.
// Anything above it (255 in practice) means the merge itself failed.
const maxConflictExitCode = 127

// MergeLabels are the names printed in conflict markers for each side.
type MergeLabels struct {
	Current string
	Base    string
	Other   string
}

// MergeFileResult describes a completed `git merge-file` run
type MergeFileResult struct {
	// Conflicts is the number of conflicting hunks; 0 means a clean merge.
	Conflicts int
	// Output is git's combined stdout and stderr.
	Output string
}

// HasConflicts reports whether conflict markers were written.
func (r MergeFileResult) HasConflicts() bool {
	return r.Conflicts > 0
}

// MergeFile runs a line-based three-way merge of other into current using base
// as the common ancestor. current is rewritten in place with the merged content,
// including conflict markers when the sides disagree.
func (r *CommandRunner) MergeFile(ctx context.Context, current, base, other string, labels MergeLabels) (MergeFileResult, error) {
	args := []string{"merge-file"}
	// Labels are positional, so pass all three or none.
	if labels.Current != "" && labels.Base != "" && labels.Other != "" {
		args = append(args, "-L", labels.Current, "-L", labels.Base, "-L", labels.Other)
	}
	args = append(args, current, base, other)

	out, err := r.RunRaw(ctx, args...)
	if err == nil {
		return MergeFileResult{Output: out}, nil
	}

	var gitErr *kmerrors.GitCommandError
	if errors.As(err, &gitErr) && gitErr.ExitCode > 0 && gitErr.ExitCode <= maxConflictExitCode {
		output := strings.TrimSpace(strings.Join([]string{gitErr.Stdout, gitErr.Stderr}, "\n"))
		return MergeFileResult{Conflicts: gitErr.ExitCode, Output: output}, nil
	}
	return MergeFileResult{}, err
}
