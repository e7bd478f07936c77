package testhelpers

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FileState captures what a test needs to prove a file was not touched.
type FileState struct {
	Content string
	Mode    fs.FileMode
	ModTime time.Time
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Snapshot records the state of every regular file under dir, keyed by path
// relative to dir.
func Snapshot(t *testing.T, dir string) map[string]FileState {
	t.Helper()
	state := map[string]FileState{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		state[rel] = FileState{
			Content: string(data),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to snapshot %s: %v", dir, err)
	}
	return state
}

// Backups returns the backup files created next to dest.
func Backups(t *testing.T, dest string) []string {
	t.Helper()
	matches, err := filepath.Glob(dest + ".bak.*")
	if err != nil {
		t.Fatalf("failed to glob backups: %v", err)
	}
	return matches
}
