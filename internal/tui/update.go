package tui

import (
	"context"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"

	"github.com/codeshelf/codeshelf/internal/models"
	"github.com/codeshelf/codeshelf/internal/system"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case readmeLoadedMsg:
		// the selection may have moved on while the README loaded
		if m.screen != screenDetail || msg.projectID != m.detailID {
			return m, nil
		}
		if msg.err != nil {
			m.readme = "No README available."
			return m, nil
		}
		m.readme = msg.rendered
		return m, nil

	case statusLoadedMsg:
		if m.screen != screenDetail || msg.projectID != m.detailID {
			return m, nil
		}
		if msg.err == nil {
			m.status = msg.status
		}
		return m, nil

	case projectMutatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusLine = msg.err.Error()
		} else {
			m.err = nil
			m.statusLine = ""
		}
		m.refreshItems()
		return m, nil
	}

	switch m.screen {
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenAddForm:
		return m.updateAddForm(msg)
	case screenConfirmRemove:
		return m.updateConfirmRemove(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "enter":
			project, ok := m.selectedProject()
			if !ok {
				return m, nil
			}
			m.screen = screenDetail
			m.detailID = project.ID
			m.readme = "Loading README..."
			m.status = nil
			return m, tea.Batch(m.loadReadme(project), m.loadStatus(project))

		case "f":
			project, ok := m.selectedProject()
			if !ok {
				return m, nil
			}
			return m, m.toggleFavorite(project.ID)

		case "a":
			m.screen = screenAddForm
			m.form = newAddForm()
			return m, m.form.Init()

		case "d":
			project, ok := m.selectedProject()
			if !ok {
				return m, nil
			}
			m.screen = screenConfirmRemove
			m.removeTarget = project
			m.deleteDir = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc":
		m.screen = screenList
		m.detailID = ""
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		path := m.form.GetString("path")
		name := m.form.GetString("name")
		tags := m.form.GetString("tags")
		m.screen = screenList
		return m, m.addProject(path, name, tags)
	case huh.StateAborted:
		m.screen = screenList
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmRemove(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y":
		target := m.removeTarget
		deleteDir := m.deleteDir
		m.screen = screenList
		m.removeTarget = nil
		return m, m.removeProject(target.ID, deleteDir)
	case "x":
		m.deleteDir = !m.deleteDir
		return m, nil
	case "n", "esc":
		m.screen = screenList
		m.removeTarget = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) loadReadme(project *models.Project) tea.Cmd {
	fsys := m.fs
	width := m.width
	return func() tea.Msg {
		body, err := system.ReadReadme(fsys, project.Path)
		if err != nil {
			return readmeLoadedMsg{projectID: project.ID, err: err}
		}

		if width <= 0 {
			width = 80
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			return readmeLoadedMsg{projectID: project.ID, rendered: body}
		}

		rendered, err := renderer.Render(body)
		if err != nil {
			return readmeLoadedMsg{projectID: project.ID, rendered: body}
		}
		return readmeLoadedMsg{projectID: project.ID, rendered: rendered}
	}
}

func (m Model) loadStatus(project *models.Project) tea.Cmd {
	client := m.git
	return func() tea.Msg {
		status, err := client.Status(context.Background(), project.Path)
		return statusLoadedMsg{projectID: project.ID, status: status, err: err}
	}
}

func (m Model) toggleFavorite(id string) tea.Cmd {
	coordinator := m.coordinator
	return func() tea.Msg {
		_, err := coordinator.ToggleFavorite(context.Background(), id)
		return projectMutatedMsg{err: err}
	}
}

func (m Model) addProject(path, name, tags string) tea.Cmd {
	coordinator := m.coordinator
	return func() tea.Msg {
		abs, err := filepath.Abs(strings.TrimSpace(path))
		if err != nil {
			return projectMutatedMsg{err: err}
		}

		var tagNames []string
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tagNames = append(tagNames, tag)
			}
		}

		_, err = coordinator.AddProject(context.Background(), models.CreateProjectInput{
			Name: strings.TrimSpace(name),
			Path: abs,
			Tags: tagNames,
		})
		return projectMutatedMsg{err: err}
	}
}

func (m Model) removeProject(id string, deleteDir bool) tea.Cmd {
	coordinator := m.coordinator
	return func() tea.Msg {
		err := coordinator.RemoveProject(context.Background(), id, deleteDir)
		return projectMutatedMsg{err: err}
	}
}
