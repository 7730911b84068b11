package settings

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/filesystem"
)

func newTestStore() (*Store, *filesystem.MockFileSystem) {
	fs := filesystem.NewMockFileSystem()
	store := NewStore(fs, "/data", time.Hour)
	return store, fs
}

func TestStore_Load_Defaults(t *testing.T) {
	store, _ := newTestStore()

	require.NoError(t, store.Load())

	got := store.Get()
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, 3, got.ScanDepth)
	assert.False(t, got.SidebarCollapsed)
}

func TestStore_Load_ExistingFile(t *testing.T) {
	store, fs := newTestStore()
	fs.AddFile("/data/settings.json", []byte(`{"theme":"light","scanDepth":5}`))

	require.NoError(t, store.Load())

	got := store.Get()
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 5, got.ScanDepth)
}

func TestStore_Load_CorruptFile(t *testing.T) {
	store, fs := newTestStore()
	fs.AddFile("/data/settings.json", []byte("{not json"))

	require.Error(t, store.Load())
}

func TestStore_Update_DebouncedWrite(t *testing.T) {
	store, fs := newTestStore()
	require.NoError(t, store.Load())

	store.Update(func(s *Settings) { s.Theme = "light" })

	// nothing on disk until the window elapses or a flush happens
	assert.False(t, fs.Exists("/data/settings.json"))

	store.Flush()

	data, err := fs.ReadFile("/data/settings.json")
	require.NoError(t, err)

	var written Settings
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, "light", written.Theme)
}

func TestStore_LastWriteError(t *testing.T) {
	store, fs := newTestStore()
	require.NoError(t, store.Load())

	fs.WriteFileError = assert.AnError
	store.Update(func(s *Settings) { s.Theme = "light" })
	store.Flush()

	require.ErrorIs(t, store.LastWriteError(), assert.AnError)

	// a later successful write clears the recorded failure
	fs.WriteFileError = nil
	store.Update(func(s *Settings) { s.Theme = "dark" })
	store.Flush()

	assert.NoError(t, store.LastWriteError())
}

func TestStore_Get_ReturnsCopies(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.Load())
	store.Update(func(s *Settings) { s.ScanRoots = []string{"/code"} })

	got := store.Get()
	got.ScanRoots[0] = "/mutated"

	assert.Equal(t, []string{"/code"}, store.Get().ScanRoots)
}

func TestStore_TouchRecent(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.Load())

	store.TouchRecent("a")
	store.TouchRecent("b")
	store.TouchRecent("a") // moves to front, no duplicate

	assert.Equal(t, []string{"a", "b"}, store.Get().RecentProjects)

	// the list is capped
	for i := 0; i < 15; i++ {
		store.TouchRecent(fmt.Sprintf("p%d", i))
	}
	recent := store.Get().RecentProjects
	assert.Len(t, recent, maxRecentProjects)
	assert.Equal(t, "p14", recent[0])
}

func TestStore_Notify_CapsHistory(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.Load())

	for i := 0; i < 12; i++ {
		store.Notify("info", fmt.Sprintf("message %d", i))
	}

	notifications := store.Get().Notifications
	require.Len(t, notifications, maxNotifications)
	// oldest entries were evicted first
	assert.Equal(t, "message 2", notifications[0].Message)
	assert.Equal(t, "message 11", notifications[len(notifications)-1].Message)
}

func TestStore_DefaultEditor(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.Load())

	_, ok := store.DefaultEditor()
	assert.False(t, ok)

	store.Update(func(s *Settings) {
		s.Editors = []EditorConfig{
			{Name: "vim", Path: "vim"},
			{Name: "code", Path: "code", IsDefault: true},
		}
	})

	editor, ok := store.DefaultEditor()
	require.True(t, ok)
	assert.Equal(t, "code", editor.Name)
}

func TestStore_Close_FlushesPendingWrite(t *testing.T) {
	store, fs := newTestStore()
	require.NoError(t, store.Load())

	store.Update(func(s *Settings) { s.Theme = "light" })
	store.Close()

	assert.True(t, fs.Exists("/data/settings.json"))
}
