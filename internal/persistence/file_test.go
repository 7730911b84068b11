package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/filesystem"
	"github.com/codeshelf/codeshelf/internal/models"
)

func newFileGateway() (*FileGateway, *filesystem.MockFileSystem) {
	fs := filesystem.NewMockFileSystem()
	gateway := NewFileGateway(fs, "/data").WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return gateway, fs
}

func TestFileGateway_CreateAndList(t *testing.T) {
	ctx := context.Background()
	gateway, fs := newFileGateway()

	created, err := gateway.Create(ctx, models.CreateProjectInput{
		Path: "/repos/shelf",
		Tags: []string{"work", "work"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "shelf", created.Name)
	assert.Equal(t, []string{"work"}, created.Tags)

	// projects.json is a plain array
	data, err := fs.ReadFile("/data/projects.json")
	require.NoError(t, err)
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "/repos/shelf", raw[0]["path"])

	listed, err := gateway.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestFileGateway_Create_GeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	gateway, _ := newFileGateway()

	first, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/a"})
	require.NoError(t, err)
	second, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/b"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFileGateway_Create_RejectsDuplicatePath(t *testing.T) {
	ctx := context.Background()
	gateway, _ := newFileGateway()

	_, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/shelf"})
	require.NoError(t, err)

	_, err = gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/shelf"})
	require.ErrorIs(t, err, models.ErrDuplicatePath)
}

func TestFileGateway_Update(t *testing.T) {
	ctx := context.Background()
	gateway, _ := newFileGateway()

	created, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/shelf"})
	require.NoError(t, err)

	name := "renamed"
	updated, err := gateway.Update(ctx, created.ID, models.ProjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	listed, err := gateway.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renamed", listed[0].Name)

	_, err = gateway.Update(ctx, "ghost", models.ProjectPatch{Name: &name})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestFileGateway_Remove(t *testing.T) {
	ctx := context.Background()
	gateway, _ := newFileGateway()

	created, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/shelf"})
	require.NoError(t, err)

	require.NoError(t, gateway.Remove(ctx, created.ID))

	listed, err := gateway.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.ErrorIs(t, gateway.Remove(ctx, created.ID), models.ErrNotFound)
}

func TestFileGateway_Registries_VersionedEnvelope(t *testing.T) {
	ctx := context.Background()
	gateway, fs := newFileGateway()

	require.NoError(t, gateway.SaveCategories(ctx, []string{"work", "oss"}))
	require.NoError(t, gateway.SaveLabels(ctx, []string{"go"}))

	data, err := fs.ReadFile("/data/categories.json")
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, float64(1), envelope["version"])
	assert.NotEmpty(t, envelope["lastUpdated"])

	registries, err := gateway.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "oss"}, registries.Categories)
	assert.Equal(t, []string{"go"}, registries.Labels)
}

func TestFileGateway_ReadAll_MissingFilesAreEmpty(t *testing.T) {
	gateway, _ := newFileGateway()

	registries, err := gateway.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, registries.Categories)
	assert.Empty(t, registries.Labels)
}

func TestFileGateway_Create_CancelledContext(t *testing.T) {
	gateway, _ := newFileGateway()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/shelf"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileGateway_WriteFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	gateway, fs := newFileGateway()
	fs.WriteFileError = assert.AnError

	_, err := gateway.Create(ctx, models.CreateProjectInput{Path: "/repos/shelf"})
	require.Error(t, err)

	// nothing half-written is listed afterwards
	fs.WriteFileError = nil
	listed, err := gateway.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
