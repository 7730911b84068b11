package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/git"
	"github.com/codeshelf/codeshelf/internal/labels"
	"github.com/codeshelf/codeshelf/internal/models"
)

// ImportCommand handles the import command
type ImportCommand struct {
	deps *Deps

	depth  int
	detect bool
}

// NewImportCommand creates a new import command
func NewImportCommand(deps *Deps) *cobra.Command {
	cmd := &ImportCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:   "import <root>",
		Short: "Scan a directory tree and import discovered repositories",
		Long: `Scan a directory tree for Git repositories and register every one
that is not already on the shelf.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().IntVar(&cmd.depth, "depth", 0, "maximum scan depth (default from settings)")
	cobraCmd.Flags().BoolVar(&cmd.detect, "detect", true, "detect tech-stack labels from manifests")

	return cobraCmd
}

// Run executes the import command
func (c *ImportCommand) Run(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve scan root: %w", err)
	}

	depth := c.depth
	if depth <= 0 {
		depth = c.deps.Settings.Get().ScanDepth
	}

	scanner := git.NewScanner(c.deps.FS)
	repos, err := scanner.Scan(root, depth)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No repositories found.")
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Found %d repositories under %s:\n", len(repos), root)
	for _, repo := range repos {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", repo.Path)
	}

	ok, err := confirm(c.deps, fmt.Sprintf("Import %d repositories?", len(repos)))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled.")
		return nil
	}

	inputs := make([]models.CreateProjectInput, 0, len(repos))
	for _, repo := range repos {
		input := models.CreateProjectInput{Name: repo.Name, Path: repo.Path}
		if c.detect {
			input.Labels = labels.Detect(c.deps.FS, repo.Path)
		}
		inputs = append(inputs, input)
	}

	imported, err := c.deps.Coordinator.ImportProjects(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	skipped := len(repos) - len(imported)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects (%d already on the shelf).\n", len(imported), skipped)
	return nil
}
