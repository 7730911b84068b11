package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/tui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	deps *Deps
}

// NewBrowseCommand creates a new browse command
func NewBrowseCommand(deps *Deps) *cobra.Command {
	cmd := &BrowseCommand{deps: deps}

	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the shelf interactively",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the browse command
func (c *BrowseCommand) Run(cmd *cobra.Command, _ []string) error {
	model := tui.NewModel(c.deps.Coordinator, c.deps.Git, c.deps.FS, c.deps.Labels)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
