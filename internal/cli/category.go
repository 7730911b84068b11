package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CategoryCommand handles the category registry command group
type CategoryCommand struct {
	deps *Deps
}

// NewCategoryCommand creates a new category command
func NewCategoryCommand(deps *Deps) *cobra.Command {
	cmd := &CategoryCommand{deps: deps}

	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the category registry",
	}

	categoryCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category to the registry",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunAdd,
	})
	categoryCmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a category from the registry and from every project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunRemove,
	})
	categoryCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered categories",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunList,
	})

	return categoryCmd
}

// RunAdd registers a category; adding an existing name is a no-op.
func (c *CategoryCommand) RunAdd(cmd *cobra.Command, args []string) error {
	if err := c.deps.Coordinator.AddCategory(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Category %q registered\n", args[0])
	return nil
}

// RunRemove removes a category registry-wide with its cascade.
func (c *CategoryCommand) RunRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	referencing := 0
	for _, p := range c.deps.Coordinator.Store().ListProjects() {
		if p.HasTag(name) {
			referencing++
		}
	}

	prompt := fmt.Sprintf("Remove category %q?", name)
	if referencing > 0 {
		prompt = fmt.Sprintf("Remove category %q and strip it from %d projects?", name, referencing)
	}

	ok, err := confirm(c.deps, prompt)
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Remove cancelled.")
		return nil
	}

	if err := c.deps.Coordinator.RemoveCategory(cmd.Context(), name); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed category %q\n", name)
	return nil
}

// RunList prints the category registry.
func (c *CategoryCommand) RunList(cmd *cobra.Command, _ []string) error {
	categories := c.deps.Coordinator.Store().ListCategories()
	if len(categories) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No categories.")
		return nil
	}
	for _, name := range categories {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
