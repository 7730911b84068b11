package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/codeshelf/codeshelf/internal/models"
)

const (
	bucketProjects   = "projects"
	bucketCategories = "categories"
	bucketLabels     = "labels"
)

// SQLiteGateway stores the shelf in a single-file SQLite database as JSON
// payload buckets, writing a full snapshot of the touched bucket after
// every successful mutation.
type SQLiteGateway struct {
	mu    sync.Mutex
	db    *sql.DB
	now   func() time.Time
	newID func() (string, error)

	projects   []*models.Project
	categories []string
	labels     []string
}

// NewSQLiteGateway opens (or creates) the database at path and loads the
// current snapshot into memory.
func NewSQLiteGateway(path string) (*SQLiteGateway, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite gateway: %w: database path is empty", models.ErrValidation)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	g := &SQLiteGateway{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() (string, error) { return gonanoid.New() },
	}
	if err := g.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return g, nil
}

// Close releases the underlying database handle.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) load() error {
	rows, err := g.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}

		switch bucket {
		case bucketProjects:
			if err := json.Unmarshal(payload, &g.projects); err != nil {
				return fmt.Errorf("decode projects: %w", err)
			}
		case bucketCategories:
			if err := json.Unmarshal(payload, &g.categories); err != nil {
				return fmt.Errorf("decode categories: %w", err)
			}
		case bucketLabels:
			if err := json.Unmarshal(payload, &g.labels); err != nil {
				return fmt.Errorf("decode labels: %w", err)
			}
		}
	}
	return rows.Err()
}

func (g *SQLiteGateway) persistBucket(ctx context.Context, bucket string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", bucket, err)
	}

	_, err = g.db.ExecContext(ctx, `INSERT INTO state (bucket, payload) VALUES (?, ?)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`, bucket, payload)
	if err != nil {
		return fmt.Errorf("persist %s: %w", bucket, err)
	}
	return nil
}

func (g *SQLiteGateway) Create(ctx context.Context, input models.CreateProjectInput) (*models.Project, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.projects {
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

	next := append(append([]*models.Project(nil), g.projects...), project)
	if err := g.persistBucket(ctx, bucketProjects, next); err != nil {
		return nil, err
	}

	g.projects = next
	return project.Clone(), nil
}

func (g *SQLiteGateway) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := make([]*models.Project, len(g.projects))
	var updated *models.Project
	for i, p := range g.projects {
		clone := p.Clone()
		if clone.ID == id {
			patch.Apply(clone, g.now())
			updated = clone
		}
		next[i] = clone
	}
	if updated == nil {
		return nil, fmt.Errorf("update project %s: %w", id, models.ErrNotFound)
	}

	if err := g.persistBucket(ctx, bucketProjects, next); err != nil {
		return nil, err
	}

	g.projects = next
	return updated.Clone(), nil
}

func (g *SQLiteGateway) Remove(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := make([]*models.Project, 0, len(g.projects))
	found := false
	for _, p := range g.projects {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return fmt.Errorf("remove project %s: %w", id, models.ErrNotFound)
	}

	if err := g.persistBucket(ctx, bucketProjects, next); err != nil {
		return err
	}

	g.projects = next
	return nil
}

func (g *SQLiteGateway) List(ctx context.Context) ([]*models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*models.Project, len(g.projects))
	for i, p := range g.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (g *SQLiteGateway) SaveCategories(ctx context.Context, names []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	deduped := models.DedupeNames(names)
	if err := g.persistBucket(ctx, bucketCategories, deduped); err != nil {
		return err
	}
	g.categories = deduped
	return nil
}

func (g *SQLiteGateway) SaveLabels(ctx context.Context, names []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	deduped := models.DedupeNames(names)
	if err := g.persistBucket(ctx, bucketLabels, deduped); err != nil {
		return err
	}
	g.labels = deduped
	return nil
}

func (g *SQLiteGateway) ReadAll(ctx context.Context) (Registries, error) {
	if err := ctx.Err(); err != nil {
		return Registries{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return Registries{
		Categories: append([]string(nil), g.categories...),
		Labels:     append([]string(nil), g.labels...),
	}, nil
}
