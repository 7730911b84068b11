package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/shelf"
)

// LabelCommand handles the label command group
type LabelCommand struct {
	deps *Deps

	batchMode   string
	batchLabels string
}

// NewLabelCommand creates a new label command
func NewLabelCommand(deps *Deps) *cobra.Command {
	cmd := &LabelCommand{deps: deps}

	labelCmd := &cobra.Command{
		Use:   "label",
		Short: "Manage the tech-stack labels on projects",
	}

	labelCmd.AddCommand(&cobra.Command{
		Use:   "add <project> <label>...",
		Short: "Add labels to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE:  cmd.RunAdd,
	})
	labelCmd.AddCommand(&cobra.Command{
		Use:   "rm <project> <label>...",
		Short: "Remove labels from a project",
		Args:  cobra.MinimumNArgs(2),
		RunE:  cmd.RunRemove,
	})
	labelCmd.AddCommand(&cobra.Command{
		Use:   "drop <label>",
		Short: "Remove a label from the registry and from every project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunDrop,
	})

	batchCmd := &cobra.Command{
		Use:   "batch <project>...",
		Short: "Apply the same labels to several projects at once",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cmd.RunBatch,
	}
	batchCmd.Flags().StringVar(&cmd.batchLabels, "labels", "", "comma-separated labels to apply")
	batchCmd.Flags().StringVar(&cmd.batchMode, "mode", "append", "append or replace")
	labelCmd.AddCommand(batchCmd)

	return labelCmd
}

// RunAdd appends labels to one project, registering unknown labels on
// the way.
func (c *LabelCommand) RunAdd(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	names := args[1:]
	for _, name := range names {
		if err := c.deps.Coordinator.AddLabel(cmd.Context(), name); err != nil {
			return err
		}
	}

	result, err := c.deps.Coordinator.BatchUpdateLabels(cmd.Context(), []string{project.ID}, names, shelf.BatchAppend)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Labels on %s: %s\n", project.Name, strings.Join(result.Updated[0].Labels, ", "))
	return nil
}

// RunRemove strips labels from one project.
func (c *LabelCommand) RunRemove(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(args)-1)
	for _, name := range args[1:] {
		drop[name] = struct{}{}
	}

	kept := make([]string, 0, len(project.Labels))
	for _, label := range project.Labels {
		if _, gone := drop[label]; !gone {
			kept = append(kept, label)
		}
	}

	result, err := c.deps.Coordinator.BatchUpdateLabels(cmd.Context(), []string{project.ID}, kept, shelf.BatchReplace)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Labels on %s: %s\n", project.Name, strings.Join(result.Updated[0].Labels, ", "))
	return nil
}

// RunDrop removes a label registry-wide with its cascade.
func (c *LabelCommand) RunDrop(cmd *cobra.Command, args []string) error {
	name := args[0]

	ok, err := confirm(c.deps, fmt.Sprintf("Remove label %q from the registry and every project?", name))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Drop cancelled.")
		return nil
	}

	if err := c.deps.Coordinator.RemoveLabel(cmd.Context(), name); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped label %q\n", name)
	return nil
}

// RunBatch applies the flag labels to every named project.
func (c *LabelCommand) RunBatch(cmd *cobra.Command, args []string) error {
	mode, err := shelf.ParseBatchMode(c.batchMode)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(args))
	for _, ref := range args {
		project, err := resolveProject(c.deps, ref)
		if err != nil {
			return err
		}
		ids = append(ids, project.ID)
	}

	result, err := c.deps.Coordinator.BatchUpdateLabels(cmd.Context(), ids, splitNames(c.batchLabels), mode)
	if err != nil {
		return err
	}

	reportBatch(cmd, result, "labels")
	return nil
}
