package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/codeshelf/codeshelf/internal/models"
)

// resolveProject finds a project by id, registered path or unique display
// name, in that order.
func resolveProject(deps *Deps, ref string) (*models.Project, error) {
	st := deps.Coordinator.Store()

	if p, ok := st.GetProject(ref); ok {
		return p, nil
	}

	if abs, err := filepath.Abs(ref); err == nil {
		if p, ok := st.FindByPath(abs); ok {
			return p, nil
		}
	}
	if p, ok := st.FindByPath(ref); ok {
		return p, nil
	}

	var matches []*models.Project
	for _, p := range st.ListProjects() {
		if p.Name == ref {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("project %q: %w", ref, models.ErrNotFound)
	default:
		var ids []string
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return nil, fmt.Errorf("project name %q is ambiguous, use an id: %s", ref, strings.Join(ids, ", "))
	}
}

// confirm asks the user before a destructive step. --yes answers true
// without prompting.
func confirm(deps *Deps, title string) (bool, error) {
	if deps.Yes {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return ok, nil
}

// splitNames parses a comma-separated flag value into trimmed names.
func splitNames(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// formatProjectLine renders one project for plain list output.
func formatProjectLine(p *models.Project) string {
	marker := " "
	if p.IsFavorite {
		marker = "*"
	}

	line := fmt.Sprintf("%s %-12s %-24s %s", marker, p.ID, p.Name, p.Path)
	if len(p.Tags) > 0 {
		line += "  [" + strings.Join(p.Tags, ", ") + "]"
	}
	if len(p.Labels) > 0 {
		line += "  (" + strings.Join(p.Labels, ", ") + ")"
	}
	return line
}
