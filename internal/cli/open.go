package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OpenCommand handles the open command
type OpenCommand struct {
	deps *Deps

	terminal bool
	explorer bool
	editor   string
	copyPath bool
}

// NewOpenCommand creates a new open command
func NewOpenCommand(deps *Deps) *cobra.Command {
	cmd := &OpenCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:   "open <project>",
		Short: "Open a project in an external tool",
		Long: `Open a project in the configured editor (default), a terminal, or
the platform file manager. The project's last-opened timestamp is updated.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.terminal, "terminal", false, "open a terminal at the project directory")
	cobraCmd.Flags().BoolVar(&cmd.explorer, "explorer", false, "reveal the project in the file manager")
	cobraCmd.Flags().StringVar(&cmd.editor, "editor", "", "editor binary to use instead of the configured default")
	cobraCmd.Flags().BoolVar(&cmd.copyPath, "copy-path", false, "copy the project path to the clipboard instead of opening")

	return cobraCmd
}

// Run executes the open command
func (c *OpenCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	if c.copyPath {
		if err := c.deps.Opener.CopyToClipboard(project.Path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %s\n", project.Path)
		return nil
	}

	switch {
	case c.terminal:
		terminal := c.deps.Settings.Get().Terminal
		err = c.deps.Opener.OpenInTerminal(cmd.Context(), project.Path, terminal.Type, terminal.CustomPath)
	case c.explorer:
		err = c.deps.Opener.OpenInExplorer(cmd.Context(), project.Path)
	default:
		editor := c.editor
		if editor == "" {
			if configured, ok := c.deps.Settings.DefaultEditor(); ok {
				editor = configured.Path
			}
		}
		err = c.deps.Opener.OpenInEditor(cmd.Context(), project.Path, editor)
	}
	if err != nil {
		return err
	}

	// stamping last-opened is best effort; the tool already launched
	if _, err := c.deps.Coordinator.TouchLastOpened(cmd.Context(), project.ID); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record open: %v\n", err)
	}
	c.deps.Settings.TouchRecent(project.ID)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", project.Name)
	return nil
}
