// Package tui implements the interactive browse mode: a filterable
// project list with label badges, a README preview pane and forms for
// registering projects.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/codeshelf/codeshelf/internal/filesystem"
	"github.com/codeshelf/codeshelf/internal/git"
	"github.com/codeshelf/codeshelf/internal/labels"
	"github.com/codeshelf/codeshelf/internal/models"
	"github.com/codeshelf/codeshelf/internal/shelf"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenAddForm
	screenConfirmRemove
)

// readmeLoadedMsg carries a rendered README for one project. The
// projectID lets stale results be discarded after the selection moved.
type readmeLoadedMsg struct {
	projectID string
	rendered  string
	err       error
}

// statusLoadedMsg carries the git status for the detail pane.
type statusLoadedMsg struct {
	projectID string
	status    *git.Status
	err       error
}

// projectMutatedMsg reports the outcome of a coordinator write.
type projectMutatedMsg struct {
	err error
}

// projectItem adapts a project to the bubbles list item interface.
type projectItem struct {
	project *models.Project
	badges  string
}

func (i projectItem) Title() string {
	title := i.project.Name
	if i.project.IsFavorite {
		title = "★ " + title
	}
	if i.badges != "" {
		title += " " + i.badges
	}
	return title
}

func (i projectItem) Description() string {
	desc := i.project.Path
	if len(i.project.Tags) > 0 {
		desc += "  [" + strings.Join(i.project.Tags, ", ") + "]"
	}
	return desc
}

func (i projectItem) FilterValue() string {
	return i.project.Name + " " + strings.Join(i.project.Tags, " ") + " " + strings.Join(i.project.Labels, " ")
}

// Model holds all browse-mode state.
type Model struct {
	coordinator *shelf.Coordinator
	git         git.GitClient
	fs          filesystem.FileSystem
	mapping     *labels.Mapping

	screen screen
	list   list.Model
	width  int
	height int

	// detail pane
	detailID string
	readme   string
	status   *git.Status

	// add form
	form *huh.Form

	// pending removal
	removeTarget *models.Project
	deleteDir    bool

	statusLine string
	err        error
}

// NewModel creates the browse model over the injected collaborators.
func NewModel(coordinator *shelf.Coordinator, gitClient git.GitClient, fsys filesystem.FileSystem, mapping *labels.Mapping) Model {
	delegate := list.NewDefaultDelegate()

	l := list.New(nil, delegate, 0, 0)
	l.Title = "CodeShelf"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	m := Model{
		coordinator: coordinator,
		git:         gitClient,
		fs:          fsys,
		mapping:     mapping,
		screen:      screenList,
		list:        l,
	}
	m.refreshItems()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refreshItems rebuilds the list from the store snapshot.
func (m *Model) refreshItems() {
	projects := m.coordinator.Store().SortedByName()
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{
			project: p,
			badges:  renderBadges(m.mapping, p.Labels),
		}
	}
	m.list.SetItems(items)
}

// selectedProject returns the highlighted project, if any.
func (m Model) selectedProject() (*models.Project, bool) {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return nil, false
	}
	return item.project, true
}

// newAddForm builds the register-project form.
func newAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Repository path").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("name").
				Title("Display name (optional)"),
			huh.NewInput().
				Key("tags").
				Title("Tags, comma separated (optional)"),
		),
	)
}
