package merge

import (
	"context"
	"fmt"
	"os"

	kmerrors "kiro.dev/kiro-merge/internal/errors"
	"kiro.dev/kiro-merge/internal/git"
	"kiro.dev/kiro-merge/internal/output"
)

// workspacePattern names the scratch directory of a three-way merge
const workspacePattern = "kiro_merge_"

// ThreeWayStrategy merges the source into a git-tracked destination using the
// destination's HEAD version as the common ancestor.
type ThreeWayStrategy struct {
	runner  *git.CommandRunner
	repo    *git.Repository
	relPath string
	tmpDir  string
	splog   *output.Splog
}

// NewThreeWayStrategy creates a ThreeWayStrategy for the file at relPath in repo.
// Scratch files live in a workspace under tmpDir (empty means the system default).
func NewThreeWayStrategy(runner *git.CommandRunner, repo *git.Repository, relPath, tmpDir string, splog *output.Splog) *ThreeWayStrategy {
	return &ThreeWayStrategy{
		runner:  runner,
		repo:    repo,
		relPath: relPath,
		tmpDir:  tmpDir,
		splog:   splog,
	}
}

// Name returns the strategy name used in reports
func (s *ThreeWayStrategy) Name() string {
	return "git-3way"
}

// RelPath returns the destination's path relative to the repository root
func (s *ThreeWayStrategy) RelPath() string {
	return s.relPath
}

// Apply runs `git merge-file` on copies of the destination, its HEAD version
// and the source, then writes the result over the destination. Failures before
// that write wrap ErrVersionControlUnavailable.
func (s *ThreeWayStrategy) Apply(ctx context.Context, req Request) (Result, error) {
	base, err := s.repo.ReadHeadFile(s.relPath)
	if err != nil {
		return Result{}, unavailable(fmt.Errorf("could not read base from HEAD for %s: %w", s.relPath, err))
	}

	ws, err := AcquireWorkspace(s.tmpDir, workspacePattern)
	if err != nil {
		return Result{}, unavailable(err)
	}
	defer func() {
		if err := ws.Release(); err != nil {
			s.splog.Warn("%v", err)
		}
	}()

	basePath := ws.Path("base")
	currentPath := ws.Path("current")
	otherPath := ws.Path("other")

	if err := os.WriteFile(basePath, base, 0600); err != nil {
		return Result{}, unavailable(fmt.Errorf("failed to write base: %w", err))
	}
	if err := copyFile(req.Dest, currentPath); err != nil {
		return Result{}, unavailable(err)
	}
	if err := copyFile(req.Source, otherPath); err != nil {
		return Result{}, unavailable(err)
	}

	merged, err := s.runner.MergeFile(ctx, currentPath, basePath, otherPath, git.MergeLabels{
		Current: req.Dest,
		Base:    "HEAD:" + s.relPath,
		Other:   req.Source,
	})
	if err != nil {
		return Result{}, unavailable(err)
	}

	content, err := os.ReadFile(currentPath)
	if err != nil {
		return Result{}, unavailable(fmt.Errorf("failed to read merge result: %w", err))
	}

	// Past this point the destination is being rewritten; errors are fatal.
	if err := overwrite(req.Dest, content); err != nil {
		return Result{}, err
	}

	if merged.HasConflicts() {
		return Result{
			Outcome: OutcomeMergedConflicted,
			Detail:  kmerrors.NewMergeConflictError(req.Dest, merged.Conflicts, merged.Output),
		}, nil
	}
	return Result{Outcome: OutcomeMergedClean}, nil
}

// overwrite replaces the content of an existing file, keeping its mode.
func overwrite(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write merged result to %s: %w", path, err)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", kmerrors.ErrVersionControlUnavailable, err)
}
