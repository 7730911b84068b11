package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codeshelf/codeshelf/internal/filesystem"
	"github.com/codeshelf/codeshelf/internal/models"
)

const (
	projectsFile   = "projects.json"
	categoriesFile = "categories.json"
	labelsFile     = "labels.json"

	dataFileMode = 0644
	dataDirMode  = 0755
)

// versionedFile is the on-disk envelope for registry files.
type versionedFile struct {
	Version     int       `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
	Categories  []string  `json:"categories,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
}

// FileGateway persists the shelf as pretty-printed JSON files under a
// data directory: projects.json (plain array), categories.json and
// labels.json (versioned envelopes).
type FileGateway struct {
	mu      sync.Mutex
	fs      filesystem.FileSystem
	dataDir string
	now     func() time.Time
	newID   func() (string, error)
}

// NewFileGateway creates a gateway rooted at dataDir. The directory is
// created lazily on first write.
func NewFileGateway(fs filesystem.FileSystem, dataDir string) *FileGateway {
	return &FileGateway{
		fs:      fs,
		dataDir: dataDir,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() (string, error) { return gonanoid.New() },
	}
}

// WithClock overrides the timestamp source, for tests.
func (g *FileGateway) WithClock(now func() time.Time) *FileGateway {
	g.now = now
	return g
}

func (g *FileGateway) Create(ctx context.Context, input models.CreateProjectInput) (*models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	projects, err := g.loadProjects()
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.Path == input.Path {
			return nil, fmt.Errorf("create %s: %w", input.Path, models.ErrDuplicatePath)
		}
	}

	id, err := g.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate project id: %w", err)
	}

	now := g.now()
	project := &models.Project{
		ID:        id,
		Name:      input.DisplayName(),
		Path:      input.Path,
		Tags:      models.DedupeNames(input.Tags),
		Labels:    models.DedupeNames(input.Labels),
		CreatedAt: now,
		UpdatedAt: now,
	}

	projects = append(projects, project)
	if err := g.saveProjects(projects); err != nil {
		return nil, err
	}

	return project.Clone(), nil
}

func (g *FileGateway) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	projects, err := g.loadProjects()
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.ID != id {
			continue
		}
		patch.Apply(p, g.now())
		if err := g.saveProjects(projects); err != nil {
			return nil, err
		}
		return p.Clone(), nil
	}

	return nil, fmt.Errorf("update project %s: %w", id, models.ErrNotFound)
}

func (g *FileGateway) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	projects, err := g.loadProjects()
	if err != nil {
		return err
	}

	for i, p := range projects {
		if p.ID == id {
			projects = append(projects[:i], projects[i+1:]...)
			return g.saveProjects(projects)
		}
	}

	return fmt.Errorf("remove project %s: %w", id, models.ErrNotFound)
}

func (g *FileGateway) List(ctx context.Context) ([]*models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.loadProjects()
}

func (g *FileGateway) SaveCategories(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.writeJSON(categoriesFile, versionedFile{
		Version:     1,
		LastUpdated: g.now(),
		Categories:  models.DedupeNames(names),
	})
}

func (g *FileGateway) SaveLabels(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.writeJSON(labelsFile, versionedFile{
		Version:     1,
		LastUpdated: g.now(),
		Labels:      models.DedupeNames(names),
	})
}

func (g *FileGateway) ReadAll(ctx context.Context) (Registries, error) {
	if err := ctx.Err(); err != nil {
		return Registries{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var reg Registries

	var cats versionedFile
	if ok, err := g.readJSON(categoriesFile, &cats); err != nil {
		return Registries{}, err
	} else if ok {
		reg.Categories = cats.Categories
	}

	var labels versionedFile
	if ok, err := g.readJSON(labelsFile, &labels); err != nil {
		return Registries{}, err
	} else if ok {
		reg.Labels = labels.Labels
	}

	return reg, nil
}

func (g *FileGateway) loadProjects() ([]*models.Project, error) {
	path := filepath.Join(g.dataDir, projectsFile)
	if !g.fs.Exists(path) {
		return nil, nil
	}

	data, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}

	var projects []*models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects file: %w", err)
	}

	return projects, nil
}

func (g *FileGateway) saveProjects(projects []*models.Project) error {
	if projects == nil {
		projects = []*models.Project{}
	}

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize projects: %w", err)
	}

	if err := g.fs.MkdirAll(g.dataDir, dataDirMode); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(g.dataDir, projectsFile)
	if err := g.fs.WriteFile(path, data, dataFileMode); err != nil {
		return fmt.Errorf("failed to write projects file: %w", err)
	}

	return nil
}

func (g *FileGateway) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	if err := g.fs.MkdirAll(g.dataDir, dataDirMode); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := g.fs.WriteFile(filepath.Join(g.dataDir, name), data, dataFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

// readJSON reports ok=false when the file does not exist yet.
func (g *FileGateway) readJSON(name string, v interface{}) (bool, error) {
	path := filepath.Join(g.dataDir, name)
	if !g.fs.Exists(path) {
		return false, nil
	}

	data, err := g.fs.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return true, nil
}
