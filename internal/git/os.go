package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// OSGitClient implements GitClient by shelling out to the git binary.
type OSGitClient struct{}

// NewOSGitClient creates a new OSGitClient
func NewOSGitClient() *OSGitClient {
	return &OSGitClient{}
}

// run executes `git -C path args...` and returns trimmed stdout. On a
// non-zero exit the trimmed stderr is carried in the error.
func (g *OSGitClient) run(ctx context.Context, path string, args ...string) (string, error) {
	full := append([]string{"-C", path}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (g *OSGitClient) IsRepo(ctx context.Context, path string) (bool, error) {
	if _, err := g.run(ctx, path, "rev-parse", "--git-dir"); err != nil {
		return false, nil
	}
	return true, nil
}

func (g *OSGitClient) Status(ctx context.Context, path string) (*Status, error) {
	branch, err := g.run(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = "unknown"
	}

	output, err := g.run(ctx, path, "status", "--porcelain", "-uall")
	if err != nil {
		return nil, err
	}

	staged, unstaged, untracked := parsePorcelain(output)

	// no upstream configured is not an error, just 0/0
	ahead, behind := 0, 0
	if counts, err := g.run(ctx, path, "rev-list", "--left-right", "--count", "HEAD...@{upstream}"); err == nil {
		ahead, behind = parseAheadBehind(counts)
	}

	return &Status{
		Branch:    branch,
		IsClean:   len(staged) == 0 && len(unstaged) == 0 && len(untracked) == 0,
		Staged:    staged,
		Unstaged:  unstaged,
		Untracked: untracked,
		Ahead:     ahead,
		Behind:    behind,
	}, nil
}

func (g *OSGitClient) Branches(ctx context.Context, path string) ([]Branch, error) {
	format := "%(refname:short)" + branchFieldSep + "%(HEAD)" + branchFieldSep + "%(upstream:short)" + branchFieldSep + "%(refname)"

	output, err := g.run(ctx, path, "for-each-ref", "--format="+format, "refs/heads", "refs/remotes")
	if err != nil {
		return nil, err
	}

	return parseBranches(output), nil
}

func (g *OSGitClient) Remotes(ctx context.Context, path string) ([]Remote, error) {
	output, err := g.run(ctx, path, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return parseRemotes(output), nil
}

func (g *OSGitClient) CommitHistory(ctx context.Context, path string, limit int, ref string) ([]Commit, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []string{"log", "--pretty=format:" + logFormat, "-n", strconv.Itoa(limit)}
	if ref != "" {
		args = append(args, ref)
	}

	output, err := g.run(ctx, path, args...)
	if err != nil {
		return nil, err
	}

	return parseLog(output), nil
}

func (g *OSGitClient) CommitDetail(ctx context.Context, path, hash string) (*CommitDetail, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, fmt.Errorf("commit hash cannot be empty")
	}

	output, err := g.run(ctx, path, "show", "--name-status", "--pretty=format:"+detailFormat, hash)
	if err != nil {
		return nil, err
	}

	detail := parseCommitDetail(output)
	if detail == nil {
		return nil, fmt.Errorf("commit %s not found", hash)
	}
	return detail, nil
}

func (g *OSGitClient) SearchCommits(ctx context.Context, path, query string, limit int) ([]Commit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		limit = 50
	}

	output, err := g.run(ctx, path,
		"log", "--pretty=format:"+logFormat, "-n", strconv.Itoa(limit),
		"--regexp-ignore-case", "--grep", query)
	if err != nil {
		return nil, err
	}

	return parseLog(output), nil
}

func (g *OSGitClient) Checkout(ctx context.Context, path, branch string) error {
	_, err := g.run(ctx, path, "checkout", branch)
	return err
}

func (g *OSGitClient) CreateBranch(ctx context.Context, path, branch string, checkout bool) error {
	if checkout {
		_, err := g.run(ctx, path, "checkout", "-b", branch)
		return err
	}
	_, err := g.run(ctx, path, "branch", branch)
	return err
}

func (g *OSGitClient) AddRemote(ctx context.Context, path, name, url string) error {
	_, err := g.run(ctx, path, "remote", "add", name, url)
	return err
}

func (g *OSGitClient) RemoveRemote(ctx context.Context, path, name string) error {
	_, err := g.run(ctx, path, "remote", "remove", name)
	return err
}

func (g *OSGitClient) Fetch(ctx context.Context, path, remote string) error {
	args := []string{"fetch"}
	if remote != "" {
		args = append(args, remote)
	} else {
		args = append(args, "--all")
	}
	_, err := g.run(ctx, path, args...)
	return err
}

func (g *OSGitClient) Pull(ctx context.Context, path, remote, branch string) error {
	_, err := g.run(ctx, path, "pull", remote, branch)
	return err
}

func (g *OSGitClient) Push(ctx context.Context, path, remote, branch string, force bool) error {
	args := []string{"push", remote, branch}
	if force {
		args = append(args, "--force")
	}
	_, err := g.run(ctx, path, args...)
	return err
}

func (g *OSGitClient) Add(ctx context.Context, path string, files []string) error {
	if len(files) == 0 {
		files = []string{"."}
	}
	_, err := g.run(ctx, path, append([]string{"add", "--"}, files...)...)
	return err
}

func (g *OSGitClient) Unstage(ctx context.Context, path string, files []string) error {
	args := []string{"reset", "HEAD", "--"}
	if len(files) == 0 {
		args = args[:2]
	} else {
		args = append(args, files...)
	}
	_, err := g.run(ctx, path, args...)
	return err
}

func (g *OSGitClient) Commit(ctx context.Context, path, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	_, err := g.run(ctx, path, "commit", "-m", message)
	return err
}

func (g *OSGitClient) SyncToRemote(ctx context.Context, path, remote, branch, message string, force bool) error {
	status, err := g.Status(ctx, path)
	if err != nil {
		return err
	}

	if !status.IsClean {
		if err := g.Add(ctx, path, nil); err != nil {
			return err
		}
		if err := g.Commit(ctx, path, message); err != nil {
			return err
		}
	}

	return g.Push(ctx, path, remote, branch, force)
}

func (g *OSGitClient) Init(ctx context.Context, path string) error {
	_, err := g.run(ctx, path, "init")
	return err
}

// Clone clones url into targetDir/name (or the repository's default
// directory name when name is empty) and returns the resulting path.
func (g *OSGitClient) Clone(ctx context.Context, url, targetDir, name string) (string, error) {
	if name == "" {
		name = repoNameFromURL(url)
	}
	dest := filepath.Join(targetDir, name)

	cmd := exec.CommandContext(ctx, "git", "clone", url, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git clone: %s", msg)
	}

	return dest, nil
}

// repoNameFromURL derives the directory name git would pick for a URL.
func repoNameFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}
