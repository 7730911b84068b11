package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/models"
	"github.com/codeshelf/codeshelf/internal/settings"
)

// SettingsCommand handles the settings command group
type SettingsCommand struct {
	deps *Deps
}

// NewSettingsCommand creates a new settings command
func NewSettingsCommand(deps *Deps) *cobra.Command {
	cmd := &SettingsCommand{deps: deps}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change application settings",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current settings as JSON",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunGet,
	})
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting. Supported keys: theme, sidebar-collapsed,
scan-depth, database, terminal-type, terminal-path.`,
		Args: cobra.ExactArgs(2),
		RunE: cmd.RunSet,
	})

	return settingsCmd
}

// RunGet prints the settings.
func (c *SettingsCommand) RunGet(cmd *cobra.Command, _ []string) error {
	data, err := json.MarshalIndent(c.deps.Settings.Get(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render settings: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// RunSet changes one setting and flushes the file immediately so the CLI
// invocation leaves it on disk.
func (c *SettingsCommand) RunSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	var apply func(*settings.Settings) error
	switch key {
	case "theme":
		apply = func(s *settings.Settings) error {
			s.Theme = value
			return nil
		}
	case "sidebar-collapsed":
		collapsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", models.ErrValidation, value)
		}
		apply = func(s *settings.Settings) error {
			s.SidebarCollapsed = collapsed
			return nil
		}
	case "scan-depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth <= 0 {
			return fmt.Errorf("%w: %q is not a positive integer", models.ErrValidation, value)
		}
		apply = func(s *settings.Settings) error {
			s.ScanDepth = depth
			return nil
		}
	case "database":
		apply = func(s *settings.Settings) error {
			s.Database = value
			return nil
		}
	case "terminal-type":
		apply = func(s *settings.Settings) error {
			s.Terminal.Type = value
			return nil
		}
	case "terminal-path":
		apply = func(s *settings.Settings) error {
			s.Terminal.CustomPath = value
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", models.ErrValidation, key)
	}

	var applyErr error
	c.deps.Settings.Update(func(s *settings.Settings) {
		applyErr = apply(s)
	})
	if applyErr != nil {
		return applyErr
	}
	c.deps.Settings.Flush()
	if err := c.deps.Settings.LastWriteError(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}
