package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FavoriteCommand handles the favorite command
type FavoriteCommand struct {
	deps *Deps
}

// NewFavoriteCommand creates a new favorite command
func NewFavoriteCommand(deps *Deps) *cobra.Command {
	cmd := &FavoriteCommand{deps: deps}

	return &cobra.Command{
		Use:     "favorite <project>",
		Aliases: []string{"fav"},
		Short:   "Toggle the favorite flag on a project",
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}
}

// Run executes the favorite command
func (c *FavoriteCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	updated, err := c.deps.Coordinator.ToggleFavorite(cmd.Context(), project.ID)
	if err != nil {
		return err
	}

	state := "unfavorited"
	if updated.IsFavorite {
		state = "favorited"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", updated.Name, state)
	return nil
}
