package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codeshelf/codeshelf/internal/models"
)

// MemoryGateway implements Gateway for testing, with hooks for error
// scenarios and deterministic ids.
type MemoryGateway struct {
	mu      sync.Mutex
	seq     int
	now     func() time.Time
	entries []*models.Project

	Categories []string
	Labels     []string

	// Hooks for testing error scenarios
	CreateError         error
	RemoveError         error
	SaveCategoriesError error
	SaveLabelsError     error
	// UpdateErrors fails Update for specific project ids (partial
	// batch failures); UpdateError fails every Update.
	UpdateError  error
	UpdateErrors map[string]error
}

// NewMemoryGateway creates an empty MemoryGateway with a fixed clock.
func NewMemoryGateway() *MemoryGateway {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &MemoryGateway{
		now:          func() time.Time { return base },
		UpdateErrors: make(map[string]error),
	}
}

func (g *MemoryGateway) Create(_ context.Context, input models.CreateProjectInput) (*models.Project, error) {
	if g.CreateError != nil {
		return nil, g.CreateError
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.entries {
		if p.Path == input.Path {
			return nil, fmt.Errorf("create %s: %w", input.Path, models.ErrDuplicatePath)
		}
	}

	g.seq++
	now := g.now()
	project := &models.Project{
		ID:        fmt.Sprintf("proj-%03d", g.seq),
		Name:      input.DisplayName(),
		Path:      input.Path,
		Tags:      models.DedupeNames(input.Tags),
		Labels:    models.DedupeNames(input.Labels),
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.entries = append(g.entries, project)
	return project.Clone(), nil
}

func (g *MemoryGateway) Update(_ context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if g.UpdateError != nil {
		return nil, g.UpdateError
	}
	if err, ok := g.UpdateErrors[id]; ok {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.entries {
		if p.ID == id {
			patch.Apply(p, g.now())
			return p.Clone(), nil
		}
	}
	return nil, fmt.Errorf("update project %s: %w", id, models.ErrNotFound)
}

func (g *MemoryGateway) Remove(_ context.Context, id string) error {
	if g.RemoveError != nil {
		return g.RemoveError
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, p := range g.entries {
		if p.ID == id {
			g.entries = append(g.entries[:i], g.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove project %s: %w", id, models.ErrNotFound)
}

func (g *MemoryGateway) List(_ context.Context) ([]*models.Project, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*models.Project, len(g.entries))
	for i, p := range g.entries {
		out[i] = p.Clone()
	}
	return out, nil
}

func (g *MemoryGateway) SaveCategories(_ context.Context, names []string) error {
	if g.SaveCategoriesError != nil {
		return g.SaveCategoriesError
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.Categories = models.DedupeNames(names)
	return nil
}

func (g *MemoryGateway) SaveLabels(_ context.Context, names []string) error {
	if g.SaveLabelsError != nil {
		return g.SaveLabelsError
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.Labels = models.DedupeNames(names)
	return nil
}

func (g *MemoryGateway) ReadAll(_ context.Context) (Registries, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Registries{
		Categories: append([]string(nil), g.Categories...),
		Labels:     append([]string(nil), g.Labels...),
	}, nil
}

// Seed registers a project directly, bypassing uniqueness checks. Test
// setup helper.
func (g *MemoryGateway) Seed(project *models.Project) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append(g.entries, project.Clone())
}
