package git

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// ErrOutsideWorktree indicates that a path does not live under the repository root
var ErrOutsideWorktree = errors.New("path is outside the working tree")

// Repository wraps a go-git repository
type Repository struct {
	*gogit.Repository
	root string
}

// OpenRepository opens the git repository whose working tree contains dir.
// Parent directories are searched for a .git entry.
func OpenRepository(dir string) (*Repository, error) {
	absPath, err := resolvePath(dir)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	// Get the worktree to find the root
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	root, err := resolvePath(worktree.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	return &Repository{
		Repository: repo,
		root:       root,
	}, nil
}

// GetRepoRoot returns the root directory of the working tree
func (r *Repository) GetRepoRoot() string {
	return r.root
}

// RelPath returns path relative to the repository root, slash-separated as it
// appears in the index.
func (r *Repository) RelPath(path string) (string, error) {
	dir, err := resolvePath(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.root, filepath.Join(dir, filepath.Base(path)))
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideWorktree)
	}
	return filepath.ToSlash(rel), nil
}

// IsTracked reports whether rel has an entry in the index
func (r *Repository) IsTracked(rel string) (bool, error) {
	idx, err := r.Storer.Index()
	if err != nil {
		return false, fmt.Errorf("failed to read index: %w", err)
	}

	if _, err := idx.Entry(rel); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up %s in index: %w", rel, err)
	}
	return true, nil
}

// ReadHeadFile returns the content of rel as recorded in the HEAD commit
func (r *Repository) ReadHeadFile(rel string) ([]byte, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	file, err := commit.File(rel)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s in HEAD: %w", rel, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open blob for %s: %w", rel, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob for %s: %w", rel, err)
	}
	return content, nil
}

// resolvePath makes path absolute and resolves symlinks so that repository
// roots and file paths compare consistently (on macOS /var is /private/var).
func resolvePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return resolved, nil
}
