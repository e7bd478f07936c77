package merge_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"kiro.dev/kiro-merge/internal/merge"
)

func TestWorkspace(t *testing.T) {
	parent := t.TempDir()

	ws, err := merge.AcquireWorkspace(parent, "kiro_merge_")
	require.NoError(t, err)
	require.DirExists(t, ws.Dir())
	require.NoError(t, os.WriteFile(ws.Path("base"), []byte("x"), 0600))

	require.NoError(t, ws.Release())
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	require.Empty(t, entries)

	// Releasing twice is harmless
	require.NoError(t, ws.Release())
}

func TestAcquireWorkspaceMissingParent(t *testing.T) {
	_, err := merge.AcquireWorkspace(t.TempDir()+"/does/not/exist", "kiro_merge_")
	require.Error(t, err)
}
