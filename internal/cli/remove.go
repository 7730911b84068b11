package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	deps *Deps

	deleteDir bool
}

// NewRemoveCommand creates a new remove command
func NewRemoveCommand(deps *Deps) *cobra.Command {
	cmd := &RemoveCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:     "remove <project>",
		Aliases: []string{"rm"},
		Short:   "Remove a project from the shelf",
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.deleteDir, "delete-dir", false, "also delete the project directory from disk")

	return cobraCmd
}

// Run executes the remove command
func (c *RemoveCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if c.deleteDir {
		ok, err := confirm(c.deps, fmt.Sprintf("Permanently delete %s from disk?", project.Path))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Remove cancelled.")
			return nil
		}
	}

	if err := c.deps.Coordinator.RemoveProject(cmd.Context(), project.ID, c.deleteDir); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", project.Name)
	return nil
}
