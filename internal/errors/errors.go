// Package errors provides sentinel errors and custom error types for kiro-merge.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Exit statuses reported by the kiro-merge binary.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitUsage          = 2
	ExitSourceNotFound = 3
)

// Sentinel errors for common conditions
var (
	// ErrUsage indicates a malformed invocation
	ErrUsage = errors.New("usage error")

	// ErrSourceNotFound indicates that the source file does not exist
	ErrSourceNotFound = errors.New("source not found")

	// ErrVersionControlUnavailable indicates that a git three-way merge could not be
	// performed and the caller should fall back to another strategy
	ErrVersionControlUnavailable = errors.New("version control unavailable")

	// ErrMergeConflict indicates that a three-way merge left conflict markers behind
	ErrMergeConflict = errors.New("merge conflict")

	// ErrEncodingMismatch indicates that a file is not UTF-8 text
	ErrEncodingMismatch = errors.New("encoding mismatch")
)

// UsageError represents a malformed command line
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrUsage
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// NewUsageError creates a new UsageError
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// SourceNotFoundError represents an error when the source path does not exist
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("src not found: %s", e.Path)
}

// Is returns true if the target error is ErrSourceNotFound
func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// NewSourceNotFoundError creates a new SourceNotFoundError
func NewSourceNotFoundError(path string) *SourceNotFoundError {
	return &SourceNotFoundError{Path: path}
}

// MergeConflictError describes a three-way merge that completed with conflicts.
// It is informational: the conflicted content is still written.
type MergeConflictError struct {
	Path      string
	Conflicts int
	Output    string
}

func (e *MergeConflictError) Error() string {
	if e.Conflicts > 0 {
		return fmt.Sprintf("%d merge conflict(s) in %s", e.Conflicts, e.Path)
	}
	return fmt.Sprintf("merge conflicts in %s", e.Path)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(path string, conflicts int, output string) *MergeConflictError {
	return &MergeConflictError{
		Path:      path,
		Conflicts: conflicts,
		Output:    output,
	}
}

// EncodingMismatchError represents a file that failed the UTF-8 text check
type EncodingMismatchError struct {
	Path string
}

func (e *EncodingMismatchError) Error() string {
	return fmt.Sprintf("not utf-8 text: %s", e.Path)
}

// Is returns true if the target error is ErrEncodingMismatch
func (e *EncodingMismatchError) Is(target error) bool {
	return target == ErrEncodingMismatch
}

// NewEncodingMismatchError creates a new EncodingMismatchError
func NewEncodingMismatchError(path string) *EncodingMismatchError {
	return &EncodingMismatchError{Path: path}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError. exitCode is -1 when the
// process did not exit normally.
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrSourceNotFound):
		return ExitSourceNotFound
	default:
		return ExitFailure
	}
}
