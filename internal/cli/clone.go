package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// CloneCommand handles the clone command
type CloneCommand struct {
	deps *Deps

	name string
}

// NewCloneCommand creates a new clone command
func NewCloneCommand(deps *Deps) *cobra.Command {
	cmd := &CloneCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:   "clone <url> [target-dir]",
		Short: "Clone a remote repository and add it to the shelf",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.name, "name", "", "display name for the new project")

	return cobraCmd
}

// Run executes the clone command
func (c *CloneCommand) Run(cmd *cobra.Command, args []string) error {
	url := args[0]

	targetDir := "."
	if len(args) > 1 {
		targetDir = args[1]
	}
	targetDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("failed to resolve target directory: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cloning %s...\n", url)

	project, err := c.deps.Coordinator.CloneProject(cmd.Context(), c.deps.Git, url, targetDir, c.name)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cloned into %s and added as %s (%s)\n", project.Path, project.Name, project.ID)
	return nil
}
