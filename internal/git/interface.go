package git

import (
	"context"
)

// GitClient provides an abstraction over git operations for testability.
//
// Every method takes the repository path explicitly; the client itself
// carries no per-repository state and a single instance serves the whole
// shelf.
type GitClient interface {
	// Repository inspection
	IsRepo(ctx context.Context, path string) (bool, error)
	Status(ctx context.Context, path string) (*Status, error)
	Branches(ctx context.Context, path string) ([]Branch, error)
	Remotes(ctx context.Context, path string) ([]Remote, error)
	CommitHistory(ctx context.Context, path string, limit int, ref string) ([]Commit, error)
	CommitDetail(ctx context.Context, path, hash string) (*CommitDetail, error)
	SearchCommits(ctx context.Context, path, query string, limit int) ([]Commit, error)

	// Branch operations
	Checkout(ctx context.Context, path, branch string) error
	CreateBranch(ctx context.Context, path, branch string, checkout bool) error

	// Remote operations
	AddRemote(ctx context.Context, path, name, url string) error
	RemoveRemote(ctx context.Context, path, name string) error
	Fetch(ctx context.Context, path, remote string) error
	Pull(ctx context.Context, path, remote, branch string) error
	Push(ctx context.Context, path, remote, branch string, force bool) error

	// Working tree operations
	Add(ctx context.Context, path string, files []string) error
	Unstage(ctx context.Context, path string, files []string) error
	Commit(ctx context.Context, path, message string) error

	// SyncToRemote stages everything, commits with the given message
	// when the tree is dirty, and pushes the branch.
	SyncToRemote(ctx context.Context, path, remote, branch, message string, force bool) error

	// Repository creation
	Init(ctx context.Context, path string) error
	Clone(ctx context.Context, url, targetDir, name string) (string, error)
}
