package git

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/codeshelf/codeshelf/internal/filesystem"
)

// DefaultScanDepth bounds directory recursion when no depth is given.
const DefaultScanDepth = 3

// Scanner discovers git repositories under a root directory.
type Scanner struct {
	fs filesystem.FileSystem
}

// NewScanner creates a new Scanner
func NewScanner(fsys filesystem.FileSystem) *Scanner {
	return &Scanner{fs: fsys}
}

// Scan walks root up to maxDepth levels and returns every directory
// containing a .git entry. Hidden directories are skipped, as is
// anything matched by a .gitignore at the root. A found repository is
// not descended into.
func (s *Scanner) Scan(root string, maxDepth int) ([]Repo, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultScanDepth
	}

	root = filepath.Clean(root)
	if !s.fs.Exists(root) {
		return nil, fmt.Errorf("scan root does not exist: %s", root)
	}

	ignore, err := s.loadRootGitIgnore(root)
	if err != nil {
		return nil, err
	}

	var repos []Repo
	err = s.fs.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// unreadable subtree, keep scanning the rest
			if path == root {
				return walkErr
			}
			return fs.SkipDir
		}
		if !entry.IsDir() || path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}

		if ignore != nil {
			if match := ignore.Relative(rel, true); match != nil && match.Ignore() {
				return fs.SkipDir
			}
		}

		// don't look past maxDepth levels below root
		if strings.Count(rel, "/")+1 > maxDepth {
			return fs.SkipDir
		}

		// a directory holding a .git entry is a repository; skip its
		// whole subtree so nested checkouts are not double counted
		if s.fs.Exists(filepath.Join(path, ".git")) {
			repos = append(repos, Repo{
				Path: path,
				Name: filepath.Base(path),
			})
			return fs.SkipDir
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return repos, nil
}

func (s *Scanner) loadRootGitIgnore(root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, ".gitignore")
	if !s.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}
