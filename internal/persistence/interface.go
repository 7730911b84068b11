// Package persistence defines the durable storage gateway for the shelf
// and ships three drivers: JSON files (default), SQLite, and an in-memory
// driver for tests.
package persistence

import (
	"context"

	"github.com/codeshelf/codeshelf/internal/models"
)

// Registries bundles the category and label name sets read at startup.
type Registries struct {
	Categories []string `json:"categories"`
	Labels     []string `json:"labels"`
}

// Gateway is the backend of record for projects and registries.
//
// Create enforces path uniqueness and returns models.ErrDuplicatePath
// (wrapped) for a path that is already registered. Update and Remove
// return models.ErrNotFound for unknown ids. Implementations must not
// partially apply a failed write.
type Gateway interface {
	Create(ctx context.Context, input models.CreateProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Project, error)

	SaveCategories(ctx context.Context, names []string) error
	SaveLabels(ctx context.Context, names []string) error
	ReadAll(ctx context.Context) (Registries, error)
}
