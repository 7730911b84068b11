package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// MockRepo is the state the mock keeps per repository path.
type MockRepo struct {
	Status   Status
	Branches []Branch
	Remotes  []Remote
	Commits  []Commit

	// Details holds per-hash bodies and file lists served by
	// CommitDetail; commits without an entry get an empty detail.
	Details map[string]CommitDetail
}

// MockGitClient implements GitClient for testing. Repositories are
// registered up front with AddRepo; operations against unknown paths
// fail the way git would.
type MockGitClient struct {
	mu    sync.RWMutex
	repos map[string]*MockRepo

	// Calls records every mutating operation in order, as
	// "op path [args...]" strings.
	Calls []string

	// Hooks for testing error scenarios
	CloneError error
	PushError  error
	PullError  error
	FetchError error
}

// NewMockGitClient creates an empty MockGitClient
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		repos: make(map[string]*MockRepo),
	}
}

// AddRepo registers a repository at path with default state.
func (m *MockGitClient) AddRepo(path string) *MockRepo {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo := &MockRepo{
		Status: Status{Branch: "main", IsClean: true},
		Branches: []Branch{
			{Name: "main", IsCurrent: true},
		},
	}
	m.repos[path] = repo
	return repo
}

func (m *MockGitClient) record(op string, args ...string) {
	entry := op
	for _, a := range args {
		entry += " " + a
	}
	m.Calls = append(m.Calls, entry)
}

func (m *MockGitClient) repo(path string) (*MockRepo, error) {
	repo, ok := m.repos[path]
	if !ok {
		return nil, fmt.Errorf("not a git repository: %s", path)
	}
	return repo, nil
}

func (m *MockGitClient) IsRepo(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.repos[path]
	return ok, nil
}

func (m *MockGitClient) Status(_ context.Context, path string) (*Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, err := m.repo(path)
	if err != nil {
		return nil, err
	}
	status := repo.Status
	return &status, nil
}

func (m *MockGitClient) Branches(_ context.Context, path string) ([]Branch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, err := m.repo(path)
	if err != nil {
		return nil, err
	}
	return append([]Branch(nil), repo.Branches...), nil
}

func (m *MockGitClient) Remotes(_ context.Context, path string) ([]Remote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, err := m.repo(path)
	if err != nil {
		return nil, err
	}
	return append([]Remote(nil), repo.Remotes...), nil
}

func (m *MockGitClient) CommitHistory(_ context.Context, path string, limit int, _ string) ([]Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, err := m.repo(path)
	if err != nil {
		return nil, err
	}

	commits := append([]Commit(nil), repo.Commits...)
	if limit > 0 && limit < len(commits) {
		commits = commits[:limit]
	}
	return commits, nil
}

func (m *MockGitClient) CommitDetail(_ context.Context, path, hash string) (*CommitDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, err := m.repo(path)
	if err != nil {
		return nil, err
	}

	for _, c := range repo.Commits {
		if c.Hash != hash && c.ShortHash != hash {
			continue
		}
		detail := CommitDetail{Commit: c}
		if d, ok := repo.Details[c.Hash]; ok {
			detail.Body = d.Body
			detail.Files = append([]CommitFile(nil), d.Files...)
		}
		return &detail, nil
	}
	return nil, fmt.Errorf("commit %s not found", hash)
}

func (m *MockGitClient) SearchCommits(_ context.Context, path, query string, limit int) ([]Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, err := m.repo(path)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var out []Commit
	for _, c := range repo.Commits {
		if !strings.Contains(strings.ToLower(c.Message), query) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockGitClient) Checkout(_ context.Context, path, branch string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	found := false
	for i := range repo.Branches {
		repo.Branches[i].IsCurrent = repo.Branches[i].Name == branch
		if repo.Branches[i].Name == branch {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("branch %s not found", branch)
	}

	repo.Status.Branch = branch
	m.record("checkout", path, branch)
	return nil
}

func (m *MockGitClient) CreateBranch(_ context.Context, path, branch string, checkout bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	for _, b := range repo.Branches {
		if b.Name == branch {
			return fmt.Errorf("branch %s already exists", branch)
		}
	}

	repo.Branches = append(repo.Branches, Branch{Name: branch, IsCurrent: checkout})
	if checkout {
		for i := range repo.Branches {
			repo.Branches[i].IsCurrent = repo.Branches[i].Name == branch
		}
		repo.Status.Branch = branch
	}

	m.record("create-branch", path, branch)
	return nil
}

func (m *MockGitClient) AddRemote(_ context.Context, path, name, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	for _, r := range repo.Remotes {
		if r.Name == name {
			return fmt.Errorf("remote %s already exists", name)
		}
	}

	repo.Remotes = append(repo.Remotes, Remote{Name: name, FetchURL: url, PushURL: url})
	m.record("add-remote", path, name, url)
	return nil
}

func (m *MockGitClient) RemoveRemote(_ context.Context, path, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	for i, r := range repo.Remotes {
		if r.Name == name {
			repo.Remotes = append(repo.Remotes[:i], repo.Remotes[i+1:]...)
			m.record("remove-remote", path, name)
			return nil
		}
	}
	return fmt.Errorf("remote %s not found", name)
}

func (m *MockGitClient) Fetch(_ context.Context, path, remote string) error {
	if m.FetchError != nil {
		return m.FetchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.repo(path); err != nil {
		return err
	}
	m.record("fetch", path, remote)
	return nil
}

func (m *MockGitClient) Pull(_ context.Context, path, remote, branch string) error {
	if m.PullError != nil {
		return m.PullError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.repo(path); err != nil {
		return err
	}
	m.record("pull", path, remote, branch)
	return nil
}

func (m *MockGitClient) Push(_ context.Context, path, remote, branch string, force bool) error {
	if m.PushError != nil {
		return m.PushError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}
	repo.Status.Ahead = 0

	entry := "push"
	if force {
		entry = "push-force"
	}
	m.record(entry, path, remote, branch)
	return nil
}

func (m *MockGitClient) Add(_ context.Context, path string, files []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	repo.Status.Staged = append(repo.Status.Staged, repo.Status.Unstaged...)
	repo.Status.Staged = append(repo.Status.Staged, repo.Status.Untracked...)
	repo.Status.Unstaged = nil
	repo.Status.Untracked = nil
	m.record("add", path)
	return nil
}

func (m *MockGitClient) Unstage(_ context.Context, path string, files []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	repo.Status.Unstaged = append(repo.Status.Unstaged, repo.Status.Staged...)
	repo.Status.Staged = nil
	m.record("unstage", path)
	return nil
}

func (m *MockGitClient) Commit(_ context.Context, path, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, err := m.repo(path)
	if err != nil {
		return err
	}

	hash := fmt.Sprintf("%040d", len(repo.Commits)+1)
	repo.Commits = append([]Commit{{
		Hash:      hash,
		ShortHash: hash[:7],
		Message:   message,
	}}, repo.Commits...)

	repo.Status.Staged = nil
	repo.Status.IsClean = len(repo.Status.Unstaged) == 0 && len(repo.Status.Untracked) == 0
	repo.Status.Ahead++
	m.record("commit", path, message)
	return nil
}

func (m *MockGitClient) SyncToRemote(ctx context.Context, path, remote, branch, message string, force bool) error {
	status, err := m.Status(ctx, path)
	if err != nil {
		return err
	}

	if !status.IsClean {
		if err := m.Add(ctx, path, nil); err != nil {
			return err
		}
		if err := m.Commit(ctx, path, message); err != nil {
			return err
		}
	}

	return m.Push(ctx, path, remote, branch, force)
}

func (m *MockGitClient) Init(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.repos[path]; ok {
		return fmt.Errorf("repository already exists: %s", path)
	}
	m.repos[path] = &MockRepo{
		Status:   Status{Branch: "main", IsClean: true},
		Branches: []Branch{{Name: "main", IsCurrent: true}},
	}
	m.record("init", path)
	return nil
}

func (m *MockGitClient) Clone(_ context.Context, url, targetDir, name string) (string, error) {
	if m.CloneError != nil {
		return "", m.CloneError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" {
		name = repoNameFromURL(url)
	}
	dest := filepath.Join(targetDir, name)

	m.repos[dest] = &MockRepo{
		Status:   Status{Branch: "main", IsClean: true},
		Branches: []Branch{{Name: "main", IsCurrent: true}},
		Remotes:  []Remote{{Name: "origin", FetchURL: url, PushURL: url}},
	}
	m.record("clone", url, dest)
	return dest, nil
}
