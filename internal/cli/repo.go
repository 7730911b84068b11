package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/git"
	"github.com/codeshelf/codeshelf/internal/models"
)

// RepoCommands is the git surface: status, log, show, branches,
// checkout, remotes, fetch, pull, unstage, init and sync, all addressed
// by project reference (init takes a plain path).
type RepoCommands struct {
	deps *Deps

	logLimit  int
	logRef    string
	logSearch string

	branchCheckout bool

	fetchRemote string

	pullRemote string
	pullBranch string

	syncRemote  string
	syncBranch  string
	syncMessage string
	syncForce   bool
}

// NewRepoCommands creates the git-facing commands
func NewRepoCommands(deps *Deps) []*cobra.Command {
	cmd := &RepoCommands{deps: deps}

	statusCmd := &cobra.Command{
		Use:   "status <project>",
		Short: "Show the working tree status of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunStatus,
	}

	logCmd := &cobra.Command{
		Use:   "log <project>",
		Short: "Show recent commits of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunLog,
	}
	logCmd.Flags().IntVar(&cmd.logLimit, "limit", 20, "number of commits to show")
	logCmd.Flags().StringVar(&cmd.logRef, "ref", "", "branch or ref to read history from")
	logCmd.Flags().StringVar(&cmd.logSearch, "search", "", "only commits whose message matches")

	showCmd := &cobra.Command{
		Use:   "show <project> <hash>",
		Short: "Show one commit with its message body and changed files",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.RunShow,
	}

	branchesCmd := &cobra.Command{
		Use:   "branches <project>",
		Short: "List the branches of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunBranches,
	}

	checkoutCmd := &cobra.Command{
		Use:   "checkout <project> <branch>",
		Short: "Switch a project to another branch",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.RunCheckout,
	}

	branchCmd := &cobra.Command{
		Use:   "branch <project> <name>",
		Short: "Create a branch in a project",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.RunCreateBranch,
	}
	branchCmd.Flags().BoolVar(&cmd.branchCheckout, "checkout", false, "switch to the new branch")

	remotesCmd := &cobra.Command{
		Use:   "remotes <project>",
		Short: "List the remotes of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunRemotes,
	}
	remotesCmd.AddCommand(&cobra.Command{
		Use:   "add <project> <name> <url>",
		Short: "Add a remote to a project",
		Args:  cobra.ExactArgs(3),
		RunE:  cmd.RunRemoteAdd,
	})
	remotesCmd.AddCommand(&cobra.Command{
		Use:   "rm <project> <name>",
		Short: "Remove a remote from a project",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.RunRemoteRemove,
	})

	fetchCmd := &cobra.Command{
		Use:   "fetch <project>",
		Short: "Fetch remote refs for a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunFetch,
	}
	fetchCmd.Flags().StringVar(&cmd.fetchRemote, "remote", "", "remote to fetch (default: all)")

	pullCmd := &cobra.Command{
		Use:   "pull <project>",
		Short: "Pull the current branch of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunPull,
	}
	pullCmd.Flags().StringVar(&cmd.pullRemote, "remote", "origin", "remote to pull from")
	pullCmd.Flags().StringVar(&cmd.pullBranch, "branch", "", "branch to pull (default: current)")

	unstageCmd := &cobra.Command{
		Use:   "unstage <project> [file]...",
		Short: "Move staged changes back to the working tree",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cmd.RunUnstage,
	}

	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Initialize a repository and add it to the shelf",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunInit,
	}

	syncCmd := &cobra.Command{
		Use:   "sync <project>",
		Short: "Stage, commit and push a project's working tree",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunSync,
	}
	syncCmd.Flags().StringVar(&cmd.syncRemote, "remote", "origin", "remote to push to")
	syncCmd.Flags().StringVar(&cmd.syncBranch, "branch", "", "branch to push (default: current)")
	syncCmd.Flags().StringVar(&cmd.syncMessage, "message", "", "commit message for pending changes")
	syncCmd.Flags().BoolVar(&cmd.syncForce, "force", false, "force push")

	return []*cobra.Command{
		statusCmd, logCmd, showCmd, branchesCmd, checkoutCmd, branchCmd,
		remotesCmd, fetchCmd, pullCmd, unstageCmd, initCmd, syncCmd,
	}
}

// RunStatus prints branch, cleanliness and ahead/behind counts.
func (c *RepoCommands) RunStatus(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	status, err := c.deps.Git.Status(cmd.Context(), project.Path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s on %s\n", project.Name, status.Branch)
	if status.IsClean {
		_, _ = fmt.Fprintln(out, "Working tree clean")
	} else {
		_, _ = fmt.Fprintf(out, "Staged: %d  Unstaged: %d  Untracked: %d\n",
			len(status.Staged), len(status.Unstaged), len(status.Untracked))
	}
	if status.Ahead > 0 || status.Behind > 0 {
		_, _ = fmt.Fprintf(out, "Ahead %d, behind %d\n", status.Ahead, status.Behind)
	}
	return nil
}

// RunLog prints recent commits, optionally filtered by a message search.
func (c *RepoCommands) RunLog(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	var commits []git.Commit
	if c.logSearch != "" {
		commits, err = c.deps.Git.SearchCommits(cmd.Context(), project.Path, c.logSearch, c.logLimit)
	} else {
		commits, err = c.deps.Git.CommitHistory(cmd.Context(), project.Path, c.logLimit, c.logRef)
	}
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No commits.")
		return nil
	}

	for _, commit := range commits {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s <%s>\n",
			commit.ShortHash, commit.Message, commit.Author, commit.Email)
	}
	return nil
}

// RunShow prints one commit in full.
func (c *RepoCommands) RunShow(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	detail, err := c.deps.Git.CommitDetail(cmd.Context(), project.Path, args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "commit %s\n", detail.Hash)
	_, _ = fmt.Fprintf(out, "Author: %s <%s>\n", detail.Author, detail.Email)
	_, _ = fmt.Fprintf(out, "Date:   %s\n\n", detail.Date)
	_, _ = fmt.Fprintf(out, "    %s\n", detail.Message)
	if detail.Body != "" {
		_, _ = fmt.Fprintf(out, "\n    %s\n", detail.Body)
	}
	if len(detail.Files) > 0 {
		_, _ = fmt.Fprintln(out)
		for _, file := range detail.Files {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", file.Status, file.Path)
		}
	}
	return nil
}

// RunBranches prints local and remote branches, marking the current one.
func (c *RepoCommands) RunBranches(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	branches, err := c.deps.Git.Branches(cmd.Context(), project.Path)
	if err != nil {
		return err
	}

	for _, branch := range branches {
		marker := " "
		if branch.IsCurrent {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s", marker, branch.Name)
		if branch.Upstream != "" {
			line += " -> " + branch.Upstream
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// RunCheckout switches the project to another branch.
func (c *RepoCommands) RunCheckout(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if err := c.deps.Git.Checkout(cmd.Context(), project.Path, args[1]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now on %s\n", project.Name, args[1])
	return nil
}

// RunCreateBranch creates a branch, optionally switching to it.
func (c *RepoCommands) RunCreateBranch(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if err := c.deps.Git.CreateBranch(cmd.Context(), project.Path, args[1], c.branchCheckout); err != nil {
		return err
	}

	if c.branchCheckout {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created and switched to %s\n", args[1])
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created branch %s\n", args[1])
	}
	return nil
}

// RunFetch fetches one remote, or all of them.
func (c *RepoCommands) RunFetch(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if err := c.deps.Git.Fetch(cmd.Context(), project.Path, c.fetchRemote); err != nil {
		return err
	}

	what := c.fetchRemote
	if what == "" {
		what = "all remotes"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Fetched %s for %s\n", what, project.Name)
	return nil
}

// RunPull pulls the chosen branch, defaulting to the current one.
func (c *RepoCommands) RunPull(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	branch := c.pullBranch
	if branch == "" {
		status, err := c.deps.Git.Status(cmd.Context(), project.Path)
		if err != nil {
			return err
		}
		branch = status.Branch
	}

	if err := c.deps.Git.Pull(cmd.Context(), project.Path, c.pullRemote, branch); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s/%s into %s\n", c.pullRemote, branch, project.Name)
	return nil
}

// RunUnstage moves staged files back to the working tree. With no files
// everything is unstaged.
func (c *RepoCommands) RunUnstage(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if err := c.deps.Git.Unstage(cmd.Context(), project.Path, args[1:]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unstaged changes in %s\n", project.Name)
	return nil
}

// RunInit initializes a repository at the path and registers it.
func (c *RepoCommands) RunInit(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := c.deps.FS.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.deps.Git.Init(cmd.Context(), path); err != nil {
		return err
	}

	project, err := c.deps.Coordinator.AddProject(cmd.Context(), models.CreateProjectInput{Path: path})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s (%s)\n", project.Name, project.ID)
	return nil
}

// RunRemotes prints the configured remotes.
func (c *RepoCommands) RunRemotes(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	remotes, err := c.deps.Git.Remotes(cmd.Context(), project.Path)
	if err != nil {
		return err
	}

	for _, remote := range remotes {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", remote.Name, remote.FetchURL)
	}
	return nil
}

// RunRemoteAdd adds a remote.
func (c *RepoCommands) RunRemoteAdd(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if err := c.deps.Git.AddRemote(cmd.Context(), project.Path, args[1], args[2]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added remote %s\n", args[1])
	return nil
}

// RunRemoteRemove removes a remote.
func (c *RepoCommands) RunRemoteRemove(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if err := c.deps.Git.RemoveRemote(cmd.Context(), project.Path, args[1]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed remote %s\n", args[1])
	return nil
}

// RunSync stages, commits and pushes in one step.
func (c *RepoCommands) RunSync(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if c.syncForce {
		ok, err := confirm(c.deps, fmt.Sprintf("Force push %s to %s?", project.Name, c.syncRemote))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Sync cancelled.")
			return nil
		}
	}

	message := c.syncMessage
	if message == "" {
		message = "Sync from codeshelf"
	}

	branch := c.syncBranch
	if branch == "" {
		status, err := c.deps.Git.Status(cmd.Context(), project.Path)
		if err != nil {
			return err
		}
		branch = status.Branch
	}
	if strings.TrimSpace(branch) == "" {
		return fmt.Errorf("could not determine branch for %s", project.Name)
	}

	if err := c.deps.Git.SyncToRemote(cmd.Context(), project.Path, c.syncRemote, branch, message, c.syncForce); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Synced %s to %s/%s\n", project.Name, c.syncRemote, branch)
	return nil
}
