// Package store holds the in-memory authoritative cache of projects,
// categories and labels for the running session.
//
// The store performs no I/O. Durability is the caller's responsibility
// (the shelf coordinator persists before or alongside every cache write),
// so store state always reflects a persisted or pending-persist value.
package store

import (
	"sort"
	"sync"

	"github.com/codeshelf/codeshelf/internal/models"
)

// Store is the entity registry. Construct one per session with New and
// inject it explicitly; there is no package-level instance.
type Store struct {
	mu         sync.RWMutex
	projects   []*models.Project
	categories []string
	labels     []string
}

// New creates an empty Store
func New() *Store {
	return &Store{}
}

// ListProjects returns a snapshot of all projects in insertion order.
// The returned values are deep copies; mutating them does not affect
// the cache.
func (s *Store) ListProjects() []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// GetProject returns a copy of the project with the given id.
func (s *Store) GetProject(id string) (*models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return nil, false
}

// FindByPath returns a copy of the project registered at the given path.
func (s *Store) FindByPath(path string) (*models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.Path == path {
			return p.Clone(), true
		}
	}
	return nil, false
}

// UpsertProject replaces the project with the same id, or appends it if
// the id is new. Persistence is the caller's responsibility.
func (s *Store) UpsertProject(project *models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := project.Clone()
	for i, p := range s.projects {
		if p.ID == clone.ID {
			s.projects[i] = clone
			return
		}
	}
	s.projects = append(s.projects, clone)
}

// RemoveProject drops the project with the given id from the cache.
// Removing an unknown id is a no-op.
func (s *Store) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return
		}
	}
}

// ReplaceProjects swaps the whole project list in one step. Used by
// cascading removals and reloads so the view observes a single change.
func (s *Store) ReplaceProjects(projects []*models.Project) {
	clones := make([]*models.Project, len(projects))
	for i, p := range projects {
		clones[i] = p.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = clones
}

// ListCategories returns the current category registry snapshot.
func (s *Store) ListCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// ListLabels returns the current label registry snapshot.
func (s *Store) ListLabels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.labels...)
}

// SetCategories replaces the category registry.
func (s *Store) SetCategories(names []string) {
	deduped := models.DedupeNames(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = deduped
}

// SetLabels replaces the label registry.
func (s *Store) SetLabels(names []string) {
	deduped := models.DedupeNames(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = deduped
}

// ApplyCascade atomically installs the stripped project list together
// with the new registry set, so a cascading removal is observed as a
// single state change.
func (s *Store) ApplyCascade(projects []*models.Project, categories, labels []string) {
	clones := make([]*models.Project, len(projects))
	for i, p := range projects {
		clones[i] = p.Clone()
	}
	categories = models.DedupeNames(categories)
	labels = models.DedupeNames(labels)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = clones
	s.categories = categories
	s.labels = labels
}

// Count returns the number of cached projects.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// SortedByName returns the projects sorted by display name, favorites
// first. Read helper for list rendering; the cache order is unchanged.
func (s *Store) SortedByName() []*models.Project {
	out := s.ListProjects()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		return out[i].Name < out[j].Name
	})
	return out
}
