package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.screen {
	case screenDetail:
		return m.viewDetail()
	case screenAddForm:
		return m.form.View()
	case screenConfirmRemove:
		return m.viewConfirmRemove()
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.statusLine != "" {
		b.WriteString(errorStyle.Render(m.statusLine))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: details  f: favorite  a: add  d: remove  /: filter  q: quit"))
	return b.String()
}

func (m Model) viewDetail() string {
	project, ok := m.coordinator.Store().GetProject(m.detailID)
	if !ok {
		return "Project gone.\n\n" + helpStyle.Render("esc: back")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(project.Name))
	if project.IsFavorite {
		b.WriteString(" ★")
	}
	b.WriteString("\n")
	b.WriteString(pathStyle.Render(project.Path))
	b.WriteString("\n")

	if badges := renderBadges(m.mapping, project.Labels); badges != "" {
		b.WriteString(badges)
		b.WriteString("\n")
	}
	if len(project.Tags) > 0 {
		b.WriteString("Tags: " + strings.Join(project.Tags, ", ") + "\n")
	}

	if m.status != nil {
		line := fmt.Sprintf("On %s", m.status.Branch)
		if m.status.IsClean {
			line += " " + statusCleanStyle.Render("clean")
		} else {
			line += " " + statusDirtyStyle.Render(fmt.Sprintf("%d staged, %d unstaged, %d untracked",
				len(m.status.Staged), len(m.status.Unstaged), len(m.status.Untracked)))
		}
		if m.status.Ahead > 0 || m.status.Behind > 0 {
			line += fmt.Sprintf(" (ahead %d, behind %d)", m.status.Ahead, m.status.Behind)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.readme)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: back  q: back  ctrl+c: quit"))
	return b.String()
}

func (m Model) viewConfirmRemove() string {
	if m.removeTarget == nil {
		return ""
	}

	deleteLine := "[ ] also delete directory from disk (x to toggle)"
	if m.deleteDir {
		deleteLine = "[x] also delete directory from disk (x to toggle)"
	}

	body := fmt.Sprintf("Remove %s from the shelf?\n%s\n\n%s\n\ny: confirm  n: cancel",
		titleStyle.Render(m.removeTarget.Name),
		pathStyle.Render(m.removeTarget.Path),
		deleteLine,
	)
	return confirmBoxStyle.Render(body)
}
