package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/update"
	"github.com/codeshelf/codeshelf/internal/version"
)

// UpdateCommand handles the update command
type UpdateCommand struct {
	deps *Deps

	open bool
}

// NewUpdateCommand creates a new update command
func NewUpdateCommand(deps *Deps) *cobra.Command {
	cmd := &UpdateCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:   "update",
		Short: "Check for a newer release",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.open, "open", false, "open the release page in the browser")

	return cobraCmd
}

// Run executes the update command
func (c *UpdateCommand) Run(cmd *cobra.Command, _ []string) error {
	checker := update.NewChecker()
	release, err := checker.Latest(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !update.IsNewer(version.Version, release.Version) {
		_, _ = fmt.Fprintf(out, "codeshelf %s is up to date.\n", version.Version)
		return nil
	}

	_, _ = fmt.Fprintf(out, "New release %s (current %s)\n", release.Version, version.Version)
	if release.AssetURL != "" {
		_, _ = fmt.Fprintf(out, "Download: %s\n", release.AssetURL)
	}
	if release.PageURL != "" {
		_, _ = fmt.Fprintf(out, "Release page: %s\n", release.PageURL)
	}

	if c.open && release.PageURL != "" {
		return c.deps.Opener.OpenURL(cmd.Context(), release.PageURL)
	}
	return nil
}
