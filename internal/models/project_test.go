package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectInput_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateProjectInput
		expected string
	}{
		{
			name:     "explicit name wins",
			input:    CreateProjectInput{Name: "My Project", Path: "/home/user/repos/other"},
			expected: "My Project",
		},
		{
			name:     "falls back to last path segment",
			input:    CreateProjectInput{Path: "/home/user/repos/codeshelf"},
			expected: "codeshelf",
		},
		{
			name:     "trailing slash is ignored",
			input:    CreateProjectInput{Path: "/home/user/repos/codeshelf/"},
			expected: "codeshelf",
		},
		{
			name:     "whitespace name falls back",
			input:    CreateProjectInput{Name: "   ", Path: "/repos/thing"},
			expected: "thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.DisplayName())
		})
	}
}

func TestProject_Clone_IsDeep(t *testing.T) {
	opened := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	original := &Project{
		ID:         "p1",
		Name:       "shelf",
		Path:       "/repos/shelf",
		Tags:       []string{"work"},
		Labels:     []string{"go"},
		LastOpened: &opened,
	}

	clone := original.Clone()
	clone.Tags[0] = "changed"
	clone.Labels = append(clone.Labels, "rust")
	*clone.LastOpened = opened.Add(time.Hour)

	assert.Equal(t, "work", original.Tags[0])
	assert.Equal(t, []string{"go"}, original.Labels)
	assert.Equal(t, opened, *original.LastOpened)
}

func TestProjectPatch_Apply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil fields leave the project untouched", func(t *testing.T) {
		project := &Project{Name: "shelf", IsFavorite: true, Tags: []string{"work"}}

		ProjectPatch{}.Apply(project, now)

		assert.Equal(t, "shelf", project.Name)
		assert.True(t, project.IsFavorite)
		assert.Equal(t, []string{"work"}, project.Tags)
		assert.Equal(t, now, project.UpdatedAt)
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		project := &Project{Name: "shelf", Tags: []string{"work"}}

		name := "renamed"
		favorite := true
		ProjectPatch{
			Name:       &name,
			IsFavorite: &favorite,
			Tags:       []string{"oss", "oss", "work"},
		}.Apply(project, now)

		assert.Equal(t, "renamed", project.Name)
		assert.True(t, project.IsFavorite)
		assert.Equal(t, []string{"oss", "work"}, project.Tags)
	})

	t.Run("empty slice clears the set", func(t *testing.T) {
		project := &Project{Tags: []string{"work"}}

		ProjectPatch{Tags: []string{}}.Apply(project, now)

		assert.Empty(t, project.Tags)
	})
}

func TestDedupeNames(t *testing.T) {
	require.Equal(t,
		[]string{"go", "rust", "zig"},
		DedupeNames([]string{"go", "rust", "go", "", "zig", "rust"}),
	)
	require.Empty(t, DedupeNames(nil))
}

func TestProject_HasTagAndLabel(t *testing.T) {
	project := &Project{Tags: []string{"work"}, Labels: []string{"go"}}

	assert.True(t, project.HasTag("work"))
	assert.False(t, project.HasTag("Work"))
	assert.True(t, project.HasLabel("go"))
	assert.False(t, project.HasLabel("rust"))
}
