// Package settings persists application preferences: theme, scan
// configuration, external tool bindings, recently opened projects and
// the notification history.
package settings

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/codeshelf/codeshelf/internal/filesystem"
)

const (
	settingsFile = "settings.json"

	// DefaultWriteWindow is how long rapid changes are coalesced
	// before the file is written.
	DefaultWriteWindow = 500 * time.Millisecond

	// maxNotifications caps the notification history; the oldest
	// entry is evicted first.
	maxNotifications = 10

	// maxRecentProjects caps the recently-opened list.
	maxRecentProjects = 10
)

// EditorConfig describes an external editor binding.
type EditorConfig struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// TerminalConfig describes the preferred terminal emulator.
type TerminalConfig struct {
	Type       string `json:"type,omitempty"`
	CustomPath string `json:"customPath,omitempty"`
}

// Notification is a single entry of the transient notification history.
type Notification struct {
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings is the full persisted preference set.
type Settings struct {
	Theme            string         `json:"theme"`
	SidebarCollapsed bool           `json:"sidebarCollapsed"`
	ScanDepth        int            `json:"scanDepth"`
	ScanRoots        []string       `json:"scanRoots,omitempty"`
	Editors          []EditorConfig `json:"editors,omitempty"`
	Terminal         TerminalConfig `json:"terminal"`
	Database         string         `json:"database,omitempty"`
	RecentProjects   []string       `json:"recentProjects,omitempty"`
	Notifications    []Notification `json:"notifications,omitempty"`
}

// defaults returns the settings used when no file exists yet.
func defaults() Settings {
	return Settings{
		Theme:     "dark",
		ScanDepth: 3,
	}
}

// Store loads and persists Settings, coalescing rapid updates through a
// debounced writer.
type Store struct {
	mu       sync.RWMutex
	fs       filesystem.FileSystem
	dir      string
	current  Settings
	debounce *Debouncer
	now      func() time.Time
	writeErr error
}

// NewStore creates a settings store under dir. Load must be called
// before reads.
func NewStore(fsys filesystem.FileSystem, dir string, window time.Duration) *Store {
	if window <= 0 {
		window = DefaultWriteWindow
	}
	return &Store{
		fs:       fsys,
		dir:      dir,
		current:  defaults(),
		debounce: NewDebouncer(window),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Load reads the settings file, falling back to defaults when missing.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, settingsFile)
	if !s.fs.Exists(path) {
		s.current = defaults()
		return nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	loaded := defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	s.current = loaded
	return nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.current
	out.ScanRoots = append([]string(nil), s.current.ScanRoots...)
	out.Editors = append([]EditorConfig(nil), s.current.Editors...)
	out.RecentProjects = append([]string(nil), s.current.RecentProjects...)
	out.Notifications = append([]Notification(nil), s.current.Notifications...)
	return out
}

// Update applies fn to the settings and schedules a debounced write.
func (s *Store) Update(fn func(*Settings)) {
	s.mu.Lock()
	fn(&s.current)
	s.mu.Unlock()

	s.debounce.Trigger(s.write)
}

// TouchRecent moves the project id to the front of the recently-opened
// list, evicting beyond the cap.
func (s *Store) TouchRecent(id string) {
	s.Update(func(st *Settings) {
		recent := make([]string, 0, len(st.RecentProjects)+1)
		recent = append(recent, id)
		for _, existing := range st.RecentProjects {
			if existing != id {
				recent = append(recent, existing)
			}
		}
		if len(recent) > maxRecentProjects {
			recent = recent[:maxRecentProjects]
		}
		st.RecentProjects = recent
	})
}

// Notify appends to the notification history, evicting the oldest entry
// past the cap.
func (s *Store) Notify(level, message string) {
	entry := Notification{
		Message:   message,
		Level:     level,
		CreatedAt: s.now(),
	}

	s.Update(func(st *Settings) {
		st.Notifications = append(st.Notifications, entry)
		if overflow := len(st.Notifications) - maxNotifications; overflow > 0 {
			st.Notifications = st.Notifications[overflow:]
		}
	})
}

// Flush writes any pending change immediately.
func (s *Store) Flush() {
	s.debounce.Flush()
}

// Close flushes pending changes and stops the writer.
func (s *Store) Close() {
	s.debounce.Flush()
	s.debounce.Stop()
}

func (s *Store) write() {
	s.setWriteErr(s.writeOnce())
}

func (s *Store) writeOnce() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.current, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := s.fs.WriteFile(filepath.Join(s.dir, settingsFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *Store) setWriteErr(err error) {
	s.mu.Lock()
	s.writeErr = err
	s.mu.Unlock()
}

// LastWriteError returns the outcome of the most recent flushed write.
// Persistence failures must not take the application down, so callers
// poll this to surface them as warnings.
func (s *Store) LastWriteError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeErr
}

// DefaultEditor returns the editor marked default, or the first one.
func (s *Store) DefaultEditor() (EditorConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.current.Editors {
		if e.IsDefault {
			return e, true
		}
	}
	if len(s.current.Editors) > 0 {
		return s.current.Editors[0], true
	}
	return EditorConfig{}, false
}
