package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/shelf"
)

// TagCommand handles the tag command group
type TagCommand struct {
	deps *Deps

	batchMode string
	batchTags string
}

// NewTagCommand creates a new tag command
func NewTagCommand(deps *Deps) *cobra.Command {
	cmd := &TagCommand{deps: deps}

	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage the category tags on projects",
	}

	tagCmd.AddCommand(&cobra.Command{
		Use:   "add <project> <tag>...",
		Short: "Add category tags to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE:  cmd.RunAdd,
	})
	tagCmd.AddCommand(&cobra.Command{
		Use:   "rm <project> <tag>...",
		Short: "Remove category tags from a project",
		Args:  cobra.MinimumNArgs(2),
		RunE:  cmd.RunRemove,
	})

	batchCmd := &cobra.Command{
		Use:   "batch <project>...",
		Short: "Apply the same tags to several projects at once",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cmd.RunBatch,
	}
	batchCmd.Flags().StringVar(&cmd.batchTags, "tags", "", "comma-separated tags to apply")
	batchCmd.Flags().StringVar(&cmd.batchMode, "mode", "append", "append or replace")
	tagCmd.AddCommand(batchCmd)

	return tagCmd
}

// RunAdd appends tags to one project, registering unknown categories on
// the way.
func (c *TagCommand) RunAdd(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	names := args[1:]
	for _, name := range names {
		if err := c.deps.Coordinator.AddCategory(cmd.Context(), name); err != nil {
			return err
		}
	}

	result, err := c.deps.Coordinator.BatchUpdateTags(cmd.Context(), []string{project.ID}, names, shelf.BatchAppend)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tags on %s: %s\n", project.Name, strings.Join(result.Updated[0].Tags, ", "))
	return nil
}

// RunRemove strips tags from one project.
func (c *TagCommand) RunRemove(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(c.deps, args[0])
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(args)-1)
	for _, name := range args[1:] {
		drop[name] = struct{}{}
	}

	kept := make([]string, 0, len(project.Tags))
	for _, tag := range project.Tags {
		if _, gone := drop[tag]; !gone {
			kept = append(kept, tag)
		}
	}

	result, err := c.deps.Coordinator.BatchUpdateTags(cmd.Context(), []string{project.ID}, kept, shelf.BatchReplace)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tags on %s: %s\n", project.Name, strings.Join(result.Updated[0].Tags, ", "))
	return nil
}

// RunBatch applies the flag tags to every named project, reporting
// per-project failures without aborting the rest.
func (c *TagCommand) RunBatch(cmd *cobra.Command, args []string) error {
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

	result, err := c.deps.Coordinator.BatchUpdateTags(cmd.Context(), ids, splitNames(c.batchTags), mode)
	if err != nil {
		return err
	}

	reportBatch(cmd, result, "tags")
	return nil
}

// reportBatch prints a batch outcome, failures last.
func reportBatch(cmd *cobra.Command, result *shelf.BatchResult, what string) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s on %d projects.\n", what, len(result.Updated))

	if len(result.Failed) == 0 {
		return
	}

	ids := make([]string, 0, len(result.Failed))
	for id := range result.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  failed %s: %v\n", id, result.Failed[id])
	}
}
