// Package cli wires the cobra command surface. Commands receive their
// collaborators explicitly; nothing reaches for globals.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/filesystem"
	"github.com/codeshelf/codeshelf/internal/git"
	"github.com/codeshelf/codeshelf/internal/labels"
	"github.com/codeshelf/codeshelf/internal/persistence"
	"github.com/codeshelf/codeshelf/internal/settings"
	"github.com/codeshelf/codeshelf/internal/shelf"
	"github.com/codeshelf/codeshelf/internal/store"
	"github.com/codeshelf/codeshelf/internal/system"
)

// Deps bundles the collaborators shared by all commands.
type Deps struct {
	FS          filesystem.FileSystem
	Git         git.GitClient
	Coordinator *shelf.Coordinator
	Settings    *settings.Store
	Opener      *system.Opener
	Labels      *labels.Mapping

	// Yes skips confirmation prompts (--yes).
	Yes bool
}

// NewRootCommand creates the root command
func NewRootCommand(deps *Deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codeshelf",
		Short: "Catalogue and operate on local Git repositories",
		Long: `CodeShelf keeps a local catalogue of Git repositories: add or scan
projects, organize them with categories and tech-stack labels, inspect
their Git state, and open them in your editor, terminal or file manager.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&deps.Yes, "yes", "y", false, "skip confirmation prompts")

	rootCmd.AddCommand(NewAddCommand(deps))
	rootCmd.AddCommand(NewCloneCommand(deps))
	rootCmd.AddCommand(NewImportCommand(deps))
	rootCmd.AddCommand(NewListCommand(deps))
	rootCmd.AddCommand(NewRemoveCommand(deps))
	rootCmd.AddCommand(NewFavoriteCommand(deps))
	rootCmd.AddCommand(NewRenameCommand(deps))
	rootCmd.AddCommand(NewTagCommand(deps))
	rootCmd.AddCommand(NewLabelCommand(deps))
	rootCmd.AddCommand(NewCategoryCommand(deps))
	rootCmd.AddCommand(NewOpenCommand(deps))
	rootCmd.AddCommand(NewRepoCommands(deps)...)
	rootCmd.AddCommand(NewStatsCommand(deps))
	rootCmd.AddCommand(NewSettingsCommand(deps))
	rootCmd.AddCommand(NewUpdateCommand(deps))
	rootCmd.AddCommand(NewBrowseCommand(deps))
	rootCmd.AddCommand(NewReloadCommand(deps))

	return rootCmd
}

// dataDir resolves the application data directory (~/.codeshelf).
func dataDir(fs filesystem.FileSystem) (string, error) {
	home, err := fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".codeshelf"), nil
}

// Execute builds the production dependency graph and runs the root
// command.
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	dir, err := dataDir(fs)
	if err != nil {
		return err
	}

	settingsStore := settings.NewStore(fs, dir, settings.DefaultWriteWindow)
	if err := settingsStore.Load(); err != nil {
		return err
	}
	defer settingsStore.Close()

	var gateway persistence.Gateway
	if db := settingsStore.Get().Database; db != "" {
		sqlGateway, err := persistence.NewSQLiteGateway(db)
		if err != nil {
			return err
		}
		defer func() { _ = sqlGateway.Close() }()
		gateway = sqlGateway
	} else {
		gateway = persistence.NewFileGateway(fs, dir)
	}

	coordinator := shelf.NewCoordinator(gateway, store.New(), fs)
	if err := coordinator.Load(context.Background()); err != nil {
		return err
	}

	mapping := labels.NewMapping()
	if err := mapping.LoadOverrides(fs, filepath.Join(dir, "labels.yaml")); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	deps := &Deps{
		FS:          fs,
		Git:         git.NewOSGitClient(),
		Coordinator: coordinator,
		Settings:    settingsStore,
		Opener:      system.NewOpener(system.NewExecRunner()),
		Labels:      mapping,
	}

	rootCmd := NewRootCommand(deps)
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
