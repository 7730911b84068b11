package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Project represents a catalogued Git repository on the shelf.
type Project struct {
	// ID is the opaque unique identifier, assigned at creation, immutable
	ID string `json:"id"`

	// Name is the display name, defaults to the last path segment
	Name string `json:"name"`

	// Path is the absolute filesystem path (unique across all projects)
	Path string `json:"path"`

	// IsFavorite marks the project as pinned by the user
	IsFavorite bool `json:"isFavorite"`

	// Tags are the category names the project belongs to (no duplicates)
	Tags []string `json:"tags"`

	// Labels are the tech-stack marker names (no duplicates)
	Labels []string `json:"labels"`

	// CreatedAt is the registration time
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every field mutation
	UpdatedAt time.Time `json:"updatedAt"`

	// LastOpened is set when the project is opened in an external tool
	LastOpened *time.Time `json:"lastOpened,omitempty"`
}

// Clone returns a deep copy so callers can mutate without aliasing the
// store's cached value.
func (p *Project) Clone() *Project {
	clone := *p
	clone.Tags = append([]string(nil), p.Tags...)
	clone.Labels = append([]string(nil), p.Labels...)
	if p.LastOpened != nil {
		t := *p.LastOpened
		clone.LastOpened = &t
	}
	return &clone
}

// HasTag reports whether the project carries the given category name.
func (p *Project) HasTag(name string) bool {
	return containsString(p.Tags, name)
}

// HasLabel reports whether the project carries the given label name.
func (p *Project) HasLabel(name string) bool {
	return containsString(p.Labels, name)
}

// CreateProjectInput carries the fields needed to register a project.
type CreateProjectInput struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Tags   []string `json:"tags,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// DisplayName resolves the effective name: the explicit name if set,
// otherwise the final path segment.
func (in CreateProjectInput) DisplayName() string {
	if name := strings.TrimSpace(in.Name); name != "" {
		return name
	}
	return filepath.Base(strings.TrimRight(in.Path, "/\\"))
}

// ProjectPatch describes a partial update to a project. Nil fields are
// left untouched.
type ProjectPatch struct {
	Name       *string    `json:"name,omitempty"`
	IsFavorite *bool      `json:"isFavorite,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Labels     []string   `json:"labels,omitempty"`
	LastOpened *time.Time `json:"lastOpened,omitempty"`
}

// Apply copies the set fields of the patch onto the project and refreshes
// UpdatedAt. Tag and label slices are deduplicated, preserving first
// occurrence order.
func (patch ProjectPatch) Apply(p *Project, now time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.IsFavorite != nil {
		p.IsFavorite = *patch.IsFavorite
	}
	if patch.Tags != nil {
		p.Tags = DedupeNames(patch.Tags)
	}
	if patch.Labels != nil {
		p.Labels = DedupeNames(patch.Labels)
	}
	if patch.LastOpened != nil {
		t := *patch.LastOpened
		p.LastOpened = &t
	}
	p.UpdatedAt = now
}

// DedupeNames removes duplicate names, keeping first occurrence order and
// dropping empty entries.
func DedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
