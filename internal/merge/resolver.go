package merge

import (
	"context"
	"path/filepath"

	"kiro.dev/kiro-merge/internal/git"
	"kiro.dev/kiro-merge/internal/output"
)

// EnvResolver picks strategies by probing the environment: a git executable
// on PATH, a working tree around the destination, and the destination's
// presence in the index. The unique-line strategy always comes last.
type EnvResolver struct {
	runner *git.CommandRunner
	tmpDir string
	splog  *output.Splog
}

// NewEnvResolver creates an EnvResolver that runs git through runner and
// places three-way merge workspaces under tmpDir.
func NewEnvResolver(runner *git.CommandRunner, tmpDir string, splog *output.Splog) *EnvResolver {
	return &EnvResolver{
		runner: runner,
		tmpDir: tmpDir,
		splog:  splog,
	}
}

// Resolve returns the strategies to try for dest, in order
func (r *EnvResolver) Resolve(_ context.Context, dest string) []Strategy {
	strategies := []Strategy{}
	if threeWay := r.detectThreeWay(dest); threeWay != nil {
		strategies = append(strategies, threeWay)
	}
	return append(strategies, NewUniqueLineStrategy())
}

func (r *EnvResolver) detectThreeWay(dest string) *ThreeWayStrategy {
	if !r.runner.Available() {
		r.splog.Debug("%s not found on PATH, skipping three-way merge", r.runner.Binary())
		return nil
	}

	repo, err := git.OpenRepository(filepath.Dir(dest))
	if err != nil {
		r.splog.Debug("%s is not inside a git working tree: %v", dest, err)
		return nil
	}

	relPath, err := repo.RelPath(dest)
	if err != nil {
		r.splog.Debug("could not locate %s in %s: %v", dest, repo.GetRepoRoot(), err)
		return nil
	}

	tracked, err := repo.IsTracked(relPath)
	if err != nil {
		r.splog.Debug("could not read git index: %v", err)
		return nil
	}
	if !tracked {
		r.splog.Debug("%s is not tracked in %s", relPath, repo.GetRepoRoot())
		return nil
	}

	return NewThreeWayStrategy(r.runner, repo, relPath, r.tmpDir, r.splog)
}
