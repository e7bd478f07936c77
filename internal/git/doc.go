// Package git provides low-level Git operations.
//
// It wraps git command execution and go-git repository access for:
//   - Locating the working tree that contains a path
//   - Checking whether a path is tracked in the index
//   - Reading a file's content as recorded in HEAD
//   - Running `git merge-file` for three-way merges
//
// This package should be the only place where direct git commands are executed.
package git
