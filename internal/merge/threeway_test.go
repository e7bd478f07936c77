package merge_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kiro.dev/kiro-merge/internal/git"
	"kiro.dev/kiro-merge/internal/merge"
	"kiro.dev/kiro-merge/internal/output"
	"kiro.dev/kiro-merge/testhelpers"
)

const baseContent = "one\ntwo\nthree\nfour\nfive\n"

// newEnvMerger wires a Merger to the real environment resolver with its
// workspaces under a directory the test can inspect.
func newEnvMerger(t *testing.T, gitBinary string) (*merge.Merger, *bytes.Buffer, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	splog := output.NewSplogWithWriters(&stdout, &stderr, true)
	tmpDir := t.TempDir()
	resolver := merge.NewEnvResolver(git.NewCommandRunner(gitBinary), tmpDir, splog)
	m := merge.NewMerger(splog, resolver)
	m.Now = func() time.Time { return fixedNow }
	return m, &stdout, tmpDir
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "workspace was not released")
}

func TestThreeWayMerge(t *testing.T) {
	t.Run("clean merge of a tracked file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("conf/app.conf", baseContent, "add config"); err != nil {
				return err
			}
			return s.Repo.WriteFile("conf/app.conf", "one\ntwo-local\nthree\nfour\nfive\n")
		})
		src := filepath.Join(t.TempDir(), "app.conf")
		testhelpers.WriteFile(t, src, "one\ntwo\nthree\nfour\nfive-upstream\n")
		dest := scene.Repo.Path("conf/app.conf")

		m, stdout, tmpDir := newEnvMerger(t, "git")
		report, err := m.Run(context.Background(), merge.Options{Source: src, Dest: dest})
		require.NoError(t, err)

		require.Equal(t, merge.OutcomeMergedClean, report.Outcome)
		require.Equal(t, "git-3way", report.Strategy)
		require.Equal(t, "one\ntwo-local\nthree\nfour\nfive-upstream\n", testhelpers.ReadFile(t, dest))
		require.Equal(t, "one\ntwo-local\nthree\nfour\nfive\n", testhelpers.ReadFile(t, report.BackupPath))
		require.Contains(t, stdout.String(), "Applied git 3-way merge:")
		requireEmptyDir(t, tmpDir)
	})

	t.Run("conflicting edits leave markers", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("notes.txt", "original\n", "add notes"); err != nil {
				return err
			}
			return s.Repo.WriteFile("notes.txt", "mine\n")
		})
		src := filepath.Join(t.TempDir(), "notes.txt")
		testhelpers.WriteFile(t, src, "theirs\n")
		dest := scene.Repo.Path("notes.txt")

		m, stdout, tmpDir := newEnvMerger(t, "git")
		report, err := m.Run(context.Background(), merge.Options{Source: src, Dest: dest})
		require.NoError(t, err)

		require.Equal(t, merge.OutcomeMergedConflicted, report.Outcome)
		merged := testhelpers.ReadFile(t, dest)
		require.Contains(t, merged, "<<<<<<< "+dest)
		require.Contains(t, merged, "mine\n")
		require.Contains(t, merged, "theirs\n")
		require.Contains(t, merged, ">>>>>>> "+src)
		require.Equal(t, "mine\n", testhelpers.ReadFile(t, report.BackupPath))
		require.Contains(t, stdout.String(), "with conflicts")
		requireEmptyDir(t, tmpDir)
	})

	t.Run("untracked file uses unique append", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := testhelpers.BasicSceneSetup(s); err != nil {
				return err
			}
			return s.Repo.WriteFile("scratch.txt", "a\nb\n")
		})
		src := filepath.Join(t.TempDir(), "scratch.txt")
		testhelpers.WriteFile(t, src, "b\nc\n")
		dest := scene.Repo.Path("scratch.txt")

		m, _, tmpDir := newEnvMerger(t, "git")
		report, err := m.Run(context.Background(), merge.Options{Source: src, Dest: dest})
		require.NoError(t, err)

		require.Equal(t, merge.OutcomeAppended, report.Outcome)
		require.Equal(t, "a\nb\n"+appendedBlock(src, "c\n"), testhelpers.ReadFile(t, dest))
		requireEmptyDir(t, tmpDir)
	})

	t.Run("tracked file missing from HEAD falls back", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := testhelpers.BasicSceneSetup(s); err != nil {
				return err
			}
			return s.Repo.StageFile("staged.txt", "a\n")
		})
		src := filepath.Join(t.TempDir(), "staged.txt")
		testhelpers.WriteFile(t, src, "a\nb\n")
		dest := scene.Repo.Path("staged.txt")

		m, stdout, tmpDir := newEnvMerger(t, "git")
		report, err := m.Run(context.Background(), merge.Options{Source: src, Dest: dest})
		require.NoError(t, err)

		require.Equal(t, merge.OutcomeAppended, report.Outcome)
		require.Equal(t, "unique-append", report.Strategy)
		require.Contains(t, stdout.String(), "falling back")
		requireEmptyDir(t, tmpDir)
	})

	t.Run("missing git binary disables the three-way merge", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CommitFile("notes.txt", "a\n", "add notes")
		})
		src := filepath.Join(t.TempDir(), "notes.txt")
		testhelpers.WriteFile(t, src, "a\nb\n")
		dest := scene.Repo.Path("notes.txt")

		m, stdout, _ := newEnvMerger(t, "kiro-merge-no-such-git")
		report, err := m.Run(context.Background(), merge.Options{Source: src, Dest: dest})
		require.NoError(t, err)

		require.Equal(t, merge.OutcomeAppended, report.Outcome)
		require.Equal(t, "unique-append", report.Strategy)
		require.Contains(t, stdout.String(), "kiro-merge-no-such-git not found on PATH")
	})
}

func TestEnvResolver(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CommitFile("tracked.txt", "a\n", "add tracked"); err != nil {
			return err
		}
		return s.Repo.WriteFile("untracked.txt", "a\n")
	})
	splog := output.NewSplogWithWriters(&bytes.Buffer{}, &bytes.Buffer{}, false)
	resolver := merge.NewEnvResolver(git.NewCommandRunner(""), t.TempDir(), splog)

	strategies := resolver.Resolve(context.Background(), scene.Repo.Path("tracked.txt"))
	require.Len(t, strategies, 2)
	require.Equal(t, "git-3way", strategies[0].Name())
	require.Equal(t, "tracked.txt", strategies[0].(*merge.ThreeWayStrategy).RelPath())
	require.Equal(t, "unique-append", strategies[1].Name())

	strategies = resolver.Resolve(context.Background(), scene.Repo.Path("untracked.txt"))
	require.Len(t, strategies, 1)
	require.Equal(t, "unique-append", strategies[0].Name())

	outside := filepath.Join(t.TempDir(), "plain.txt")
	testhelpers.WriteFile(t, outside, "a\n")
	strategies = resolver.Resolve(context.Background(), outside)
	require.Len(t, strategies, 1)
}
