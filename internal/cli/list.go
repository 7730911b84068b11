package cli

import (
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/models"
)

// ListCommand handles the list command
type ListCommand struct {
	deps *Deps

	tag       string
	label     string
	favorites bool
	tmpl      string
}

// NewListCommand creates a new list command
func NewListCommand(deps *Deps) *cobra.Command {
	cmd := &ListCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects on the shelf",
		RunE:    cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.tag, "tag", "", "only projects with this category tag")
	cobraCmd.Flags().StringVar(&cmd.label, "label", "", "only projects with this tech-stack label")
	cobraCmd.Flags().BoolVar(&cmd.favorites, "favorites", false, "only favorite projects")
	cobraCmd.Flags().StringVar(&cmd.tmpl, "template", "", "render each project through a Go template")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	projects := c.filter(c.deps.Coordinator.Store().SortedByName())
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No projects.")
		return nil
	}

	if c.tmpl != "" {
		return c.renderTemplate(cmd, projects)
	}

	for _, p := range projects {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatProjectLine(p))
	}
	return nil
}

func (c *ListCommand) filter(projects []*models.Project) []*models.Project {
	out := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		if c.favorites && !p.IsFavorite {
			continue
		}
		if c.tag != "" && !p.HasTag(c.tag) {
			continue
		}
		if c.label != "" && !p.HasLabel(c.label) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *ListCommand) renderTemplate(cmd *cobra.Command, projects []*models.Project) error {
	tmpl, err := template.New("list").Funcs(sprig.FuncMap()).Parse(c.tmpl)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	for _, p := range projects {
		if err := tmpl.Execute(cmd.OutOrStdout(), p); err != nil {
			return fmt.Errorf("failed to render project %s: %w", p.ID, err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
