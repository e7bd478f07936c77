package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	kmerrors "kiro.dev/kiro-merge/internal/errors"
)

// DefaultBinary is the git executable looked up on PATH.
const DefaultBinary = "git"

// CommandRunner handles execution of git commands
type CommandRunner struct {
	binary string
}

// NewCommandRunner creates a new CommandRunner. An empty binary means DefaultBinary.
func NewCommandRunner(binary string) *CommandRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandRunner{binary: binary}
}

// Binary returns the executable name or path the runner invokes.
func (r *CommandRunner) Binary() string {
	return r.binary
}

// Available reports whether the git executable can be found.
func (r *CommandRunner) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// RunRaw executes a git command in the current directory and returns its
// untrimmed stdout. Commands block until git exits; callers bound them
// through ctx if they need to.
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", kmerrors.NewGitCommandError(r.binary, args, stdout.String(), stderr.String(), exitCode, err)
	}
	return stdout.String(), nil
}
