package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/labels"
	"github.com/codeshelf/codeshelf/internal/models"
)

// AddCommand handles the add command
type AddCommand struct {
	deps *Deps

	name   string
	tags   string
	labels string
	detect bool
}

// NewAddCommand creates a new add command
func NewAddCommand(deps *Deps) *cobra.Command {
	cmd := &AddCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a local repository on the shelf",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.name, "name", "", "display name (defaults to the directory name)")
	cobraCmd.Flags().StringVar(&cmd.tags, "tags", "", "comma-separated category tags")
	cobraCmd.Flags().StringVar(&cmd.labels, "labels", "", "comma-separated tech-stack labels")
	cobraCmd.Flags().BoolVar(&cmd.detect, "detect", true, "detect tech-stack labels from manifests")

	return cobraCmd
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if !c.deps.FS.Exists(path) {
		return fmt.Errorf("%w: %s does not exist", models.ErrValidation, path)
	}

	projectLabels := splitNames(c.labels)
	if c.detect && len(projectLabels) == 0 {
		projectLabels = labels.Detect(c.deps.FS, path)
	}

	project, err := c.deps.Coordinator.AddProject(cmd.Context(), models.CreateProjectInput{
		Name:   c.name,
		Path:   path,
		Tags:   splitNames(c.tags),
		Labels: projectLabels,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", project.Name, project.ID)
	return nil
}
