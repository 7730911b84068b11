package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/models"
)

func project(id, name string) *models.Project {
	return &models.Project{ID: id, Name: name, Path: "/repos/" + id}
}

func TestStore_UpsertAndGet(t *testing.T) {
	st := New()

	st.UpsertProject(project("p1", "alpha"))
	st.UpsertProject(project("p2", "beta"))

	got, ok := st.GetProject("p1")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, 2, st.Count())

	// upsert with the same id replaces
	updated := project("p1", "alpha-renamed")
	st.UpsertProject(updated)

	got, ok = st.GetProject("p1")
	require.True(t, ok)
	assert.Equal(t, "alpha-renamed", got.Name)
	assert.Equal(t, 2, st.Count())
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	st := New()
	st.UpsertProject(&models.Project{ID: "p1", Name: "alpha", Tags: []string{"work"}})

	snapshot := st.ListProjects()
	snapshot[0].Tags[0] = "mutated"
	snapshot[0].Name = "mutated"

	got, ok := st.GetProject("p1")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, []string{"work"}, got.Tags)
}

func TestStore_FindByPath(t *testing.T) {
	st := New()
	st.UpsertProject(project("p1", "alpha"))

	got, ok := st.FindByPath("/repos/p1")
	require.True(t, ok)
	assert.Equal(t, "p1", got.ID)

	_, ok = st.FindByPath("/repos/unknown")
	assert.False(t, ok)
}

func TestStore_RemoveProject(t *testing.T) {
	st := New()
	st.UpsertProject(project("p1", "alpha"))

	st.RemoveProject("p1")
	st.RemoveProject("p1") // removing twice is a no-op

	assert.Equal(t, 0, st.Count())
}

func TestStore_Registries(t *testing.T) {
	st := New()

	st.SetCategories([]string{"work", "oss", "work"})
	st.SetLabels([]string{"go"})

	assert.Equal(t, []string{"work", "oss"}, st.ListCategories())
	assert.Equal(t, []string{"go"}, st.ListLabels())
}

func TestStore_ApplyCascade(t *testing.T) {
	st := New()
	st.UpsertProject(&models.Project{ID: "p1", Tags: []string{"work", "oss"}})
	st.SetCategories([]string{"work", "oss"})
	st.SetLabels([]string{"go"})

	stripped := []*models.Project{{ID: "p1", Tags: []string{"oss"}}}
	st.ApplyCascade(stripped, []string{"oss"}, []string{"go"})

	got, ok := st.GetProject("p1")
	require.True(t, ok)
	assert.Equal(t, []string{"oss"}, got.Tags)
	assert.Equal(t, []string{"oss"}, st.ListCategories())
	assert.Equal(t, []string{"go"}, st.ListLabels())
}

func TestStore_SortedByName_FavoritesFirst(t *testing.T) {
	st := New()
	st.UpsertProject(&models.Project{ID: "p1", Name: "zeta"})
	st.UpsertProject(&models.Project{ID: "p2", Name: "beta", IsFavorite: true})
	st.UpsertProject(&models.Project{ID: "p3", Name: "alpha"})

	sorted := st.SortedByName()
	require.Len(t, sorted, 3)
	assert.Equal(t, "beta", sorted[0].Name)
	assert.Equal(t, "alpha", sorted[1].Name)
	assert.Equal(t, "zeta", sorted[2].Name)
}
