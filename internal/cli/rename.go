package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	deps *Deps
}

// NewRenameCommand creates a new rename command
func NewRenameCommand(deps *Deps) *cobra.Command {
	cmd := &RenameCommand{deps: deps}

	return &cobra.Command{
		Use:   "rename <project> <name>",
		Short: "Change a project's display name",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.Run,
	}
}

// Run executes the rename command
func (c *RenameCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	updated, err := c.deps.Coordinator.RenameProject(cmd.Context(), project.ID, args[1])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", project.Name, updated.Name)
	return nil
}
