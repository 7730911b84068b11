package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ReloadCommand handles the reload command
type ReloadCommand struct {
	deps *Deps
}

// NewReloadCommand creates a new reload command
func NewReloadCommand(deps *Deps) *cobra.Command {
	cmd := &ReloadCommand{deps: deps}

	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read the backend state into the cache",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the reload command
func (c *ReloadCommand) Run(cmd *cobra.Command, _ []string) error {
	if err := c.deps.Coordinator.Load(cmd.Context()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reloaded %d projects.\n", c.deps.Coordinator.Store().Count())
	return nil
}
