// Package shelf implements the mutation coordinator: every write to the
// entity store goes through it, so cached state always reflects a
// persisted (or deliberately rolled back) value.
package shelf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codeshelf/codeshelf/internal/filesystem"
	"github.com/codeshelf/codeshelf/internal/models"
	"github.com/codeshelf/codeshelf/internal/persistence"
	"github.com/codeshelf/codeshelf/internal/store"
)

// Cloner is the slice of the git client the coordinator needs for
// registering remote repositories.
type Cloner interface {
	Clone(ctx context.Context, url, targetDir, name string) (string, error)
}

// DefaultGatewayTimeout bounds every persistence call so a hung backend
// cannot hang the calling surface indefinitely.
const DefaultGatewayTimeout = 30 * time.Second

// Coordinator sequences operations that must stay consistent across the
// entity store and the persistence gateway.
//
// Operations on a single project id are not serialized against each
// other; callers must avoid firing overlapping mutations on the same id.
type Coordinator struct {
	gateway persistence.Gateway
	store   *store.Store
	fs      filesystem.FileSystem
	timeout time.Duration
}

// Option configures coordinator behavior.
type Option func(*Coordinator)

// WithGatewayTimeout overrides the per-call persistence timeout.
func WithGatewayTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// NewCoordinator creates a coordinator over the given gateway and store.
func NewCoordinator(gateway persistence.Gateway, st *store.Store, fs filesystem.FileSystem, options ...Option) *Coordinator {
	c := &Coordinator{
		gateway: gateway,
		store:   st,
		fs:      fs,
		timeout: DefaultGatewayTimeout,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Store exposes the read side for view surfaces.
func (c *Coordinator) Store() *store.Store {
	return c.store
}

func (c *Coordinator) gatewayCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Load reads the full backend state into the store. Called at startup
// and by explicit reloads.
func (c *Coordinator) Load(ctx context.Context) error {
	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	projects, err := c.gateway.List(gctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	registries, err := c.gateway.ReadAll(gctx)
	if err != nil {
		return fmt.Errorf("failed to load registries: %w", err)
	}

	c.store.ApplyCascade(projects, registries.Categories, registries.Labels)
	return nil
}

// AddProject validates the input, persists the new project and inserts
// it into the store. Either both succeed or neither does.
func (c *Coordinator) AddProject(ctx context.Context, input models.CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, fmt.Errorf("%w: project path is required", models.ErrValidation)
	}

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	project, err := c.gateway.Create(gctx, input)
	if err != nil {
		return nil, err
	}

	c.store.UpsertProject(project)
	return project, nil
}

// CloneProject clones a remote repository and registers the resulting
// directory as a project.
func (c *Coordinator) CloneProject(ctx context.Context, cloner Cloner, url, targetDir, name string) (*models.Project, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: repository URL is required", models.ErrValidation)
	}
	if strings.TrimSpace(targetDir) == "" {
		return nil, fmt.Errorf("%w: target directory is required", models.ErrValidation)
	}

	path, err := cloner.Clone(ctx, url, targetDir, name)
	if err != nil {
		return nil, fmt.Errorf("clone failed: %w", err)
	}

	return c.AddProject(ctx, models.CreateProjectInput{Name: name, Path: path})
}

// ImportProjects registers a batch of discovered repositories, silently
// skipping paths that are already on the shelf. Returns the imported
// projects.
func (c *Coordinator) ImportProjects(ctx context.Context, inputs []models.CreateProjectInput) ([]*models.Project, error) {
	var imported []*models.Project
	for _, input := range inputs {
		project, err := c.AddProject(ctx, input)
		if err != nil {
			if isDuplicatePath(err) {
				continue
			}
			return imported, err
		}
		imported = append(imported, project)
	}
	return imported, nil
}

// AddCategory appends a category to the registry. Adding an existing
// name (case-sensitive exact match) is a no-op.
func (c *Coordinator) AddCategory(ctx context.Context, name string) error {
	return c.addRegistryName(ctx, name, c.store.ListCategories, c.gateway.SaveCategories, c.store.SetCategories)
}

// AddLabel appends a label to the registry. Adding an existing name is
// a no-op.
func (c *Coordinator) AddLabel(ctx context.Context, name string) error {
	return c.addRegistryName(ctx, name, c.store.ListLabels, c.gateway.SaveLabels, c.store.SetLabels)
}

func (c *Coordinator) addRegistryName(
	ctx context.Context,
	name string,
	list func() []string,
	save func(context.Context, []string) error,
	set func([]string),
) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	current := list()
	for _, existing := range current {
		if existing == name {
			return nil
		}
	}

	next := append(append([]string(nil), current...), name)

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	if err := save(gctx, next); err != nil {
		return fmt.Errorf("failed to persist registry: %w", err)
	}

	set(next)
	return nil
}

// RemoveCategory removes a category and strips it from every project
// that references it. The registry write happens first; if it fails,
// nothing is applied. The stripped projects and the shrunk registry are
// installed into the store in a single step.
func (c *Coordinator) RemoveCategory(ctx context.Context, name string) error {
	return c.removeRegistryName(ctx, name, true)
}

// RemoveLabel removes a label with the same cascading semantics as
// RemoveCategory.
func (c *Coordinator) RemoveLabel(ctx context.Context, name string) error {
	return c.removeRegistryName(ctx, name, false)
}

func (c *Coordinator) removeRegistryName(ctx context.Context, name string, isCategory bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	var registry []string
	if isCategory {
		registry = c.store.ListCategories()
	} else {
		registry = c.store.ListLabels()
	}

	found := false
	next := make([]string, 0, len(registry))
	for _, existing := range registry {
		if existing == name {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		return fmt.Errorf("%q: %w", name, models.ErrNotFound)
	}

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	// Phase 1: persist the shrunk registry. Failure here aborts the
	// cascade so cache and backend cannot diverge.
	if isCategory {
		if err := c.gateway.SaveCategories(gctx, next); err != nil {
			return fmt.Errorf("failed to persist registry: %w", err)
		}
	} else {
		if err := c.gateway.SaveLabels(gctx, next); err != nil {
			return fmt.Errorf("failed to persist registry: %w", err)
		}
	}

	// Phase 2: strip the name from every referencing project, each
	// persisted independently. A project whose write fails keeps its
	// backend state in the cache.
	projects := c.store.ListProjects()
	var failed []string
	for i, p := range projects {
		var stripped []string
		if isCategory {
			if !p.HasTag(name) {
				continue
			}
			stripped = removeName(p.Tags, name)
		} else {
			if !p.HasLabel(name) {
				continue
			}
			stripped = removeName(p.Labels, name)
		}

		// removeName never returns nil, so an emptied set still
		// counts as "set" in the patch
		patch := models.ProjectPatch{}
		if isCategory {
			patch.Tags = stripped
		} else {
			patch.Labels = stripped
		}

		updated, err := c.gateway.Update(gctx, p.ID, patch)
		if err != nil {
			failed = append(failed, p.ID)
			continue
		}
		projects[i] = updated
	}

	// Phase 3: one atomic store update, a single observable change.
	if isCategory {
		c.store.ApplyCascade(projects, next, c.store.ListLabels())
	} else {
		c.store.ApplyCascade(projects, c.store.ListCategories(), next)
	}

	if len(failed) > 0 {
		return fmt.Errorf("removed %q from registry but failed to update project(s): %s",
			name, strings.Join(failed, ", "))
	}
	return nil
}

// BatchUpdateTags edits the tags of the selected projects. Append mode
// unions with the existing set; replace mode discards it. Each project
// is persisted independently and partial failures are reported in the
// result, not swallowed.
func (c *Coordinator) BatchUpdateTags(ctx context.Context, ids []string, newTags []string, mode BatchMode) (*BatchResult, error) {
	return c.batchUpdate(ctx, ids, newTags, mode, true)
}

// BatchUpdateLabels is BatchUpdateTags for the label set.
func (c *Coordinator) BatchUpdateLabels(ctx context.Context, ids []string, newLabels []string, mode BatchMode) (*BatchResult, error) {
	return c.batchUpdate(ctx, ids, newLabels, mode, false)
}

func (c *Coordinator) batchUpdate(ctx context.Context, ids []string, names []string, mode BatchMode, isTags bool) (*BatchResult, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: invalid batch mode %q", models.ErrValidation, mode)
	}

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	result := &BatchResult{Failed: make(map[string]error)}
	for _, id := range ids {
		current, ok := c.store.GetProject(id)
		if !ok {
			result.Failed[id] = fmt.Errorf("project %s: %w", id, models.ErrNotFound)
			continue
		}

		existing := current.Tags
		if !isTags {
			existing = current.Labels
		}

		var next []string
		switch mode {
		case BatchAppend:
			next = models.DedupeNames(append(append([]string(nil), existing...), names...))
		case BatchReplace:
			next = models.DedupeNames(names)
		}

		patch := models.ProjectPatch{}
		if isTags {
			patch.Tags = next
		} else {
			patch.Labels = next
		}

		updated, err := c.gateway.Update(gctx, id, patch)
		if err != nil {
			result.Failed[id] = err
			continue
		}

		c.store.UpsertProject(updated)
		result.Updated = append(result.Updated, updated)
	}

	return result, nil
}

// ToggleFavorite flips the favorite flag, persists it and returns the
// updated project.
func (c *Coordinator) ToggleFavorite(ctx context.Context, id string) (*models.Project, error) {
	current, ok := c.store.GetProject(id)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}

	flipped := !current.IsFavorite

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	updated, err := c.gateway.Update(gctx, id, models.ProjectPatch{IsFavorite: &flipped})
	if err != nil {
		return nil, err
	}

	c.store.UpsertProject(updated)
	return updated, nil
}

// RenameProject changes the display name.
func (c *Coordinator) RenameProject(ctx context.Context, id, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrValidation)
	}

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	updated, err := c.gateway.Update(gctx, id, models.ProjectPatch{Name: &name})
	if err != nil {
		return nil, err
	}

	c.store.UpsertProject(updated)
	return updated, nil
}

// TouchLastOpened stamps the project as opened now. Best effort: the
// caller typically fires this alongside launching an external tool.
func (c *Coordinator) TouchLastOpened(ctx context.Context, id string) (*models.Project, error) {
	now := time.Now().UTC()

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	updated, err := c.gateway.Update(gctx, id, models.ProjectPatch{LastOpened: &now})
	if err != nil {
		return nil, err
	}

	c.store.UpsertProject(updated)
	return updated, nil
}

// RemoveProject deregisters a project. With deleteDirectory set, the
// on-disk directory is removed first and a deletion failure aborts the
// deregistration, surfacing the error with the registration intact.
func (c *Coordinator) RemoveProject(ctx context.Context, id string, deleteDirectory bool) error {
	current, ok := c.store.GetProject(id)
	if !ok {
		return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}

	if deleteDirectory {
		if c.fs.Exists(current.Path) {
			if err := c.fs.RemoveAll(current.Path); err != nil {
				return fmt.Errorf("failed to delete directory %s: %w", current.Path, err)
			}
		}
	}

	gctx, cancel := c.gatewayCtx(ctx)
	defer cancel()

	if err := c.gateway.Remove(gctx, id); err != nil {
		return err
	}

	c.store.RemoveProject(id)
	return nil
}

func removeName(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func isDuplicatePath(err error) bool {
	return errors.Is(err, models.ErrDuplicatePath)
}
