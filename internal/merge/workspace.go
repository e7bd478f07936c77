package merge

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is a scratch directory owned by a single merge attempt.
// Acquire it, use it, and Release it on every exit path.
type Workspace struct {
	dir string
}

// AcquireWorkspace creates a new scratch directory under parent.
// An empty parent means the system temp directory.
func AcquireWorkspace(parent, pattern string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of name inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Release removes the workspace and everything in it. Safe to call twice.
func (w *Workspace) Release() error {
	if w.dir == "" {
		return nil
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.dir, err)
	}
	w.dir = ""
	return nil
}
