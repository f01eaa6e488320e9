// Package session remembers where the cursor was in each file between runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxFiles bounds the number of remembered files; the oldest are dropped.
const maxFiles = 200

// FileState is the remembered position in one file. Col is a display column.
type FileState struct {
	CursorRow int       `json:"cursor_row"`
	CursorCol int       `json:"cursor_col"`
	Seen      time.Time `json:"seen"`
}

type Session struct {
	Files     map[string]FileState `json:"files"`
	LastSaved time.Time            `json:"last_saved"`
}

// Manager owns the session file.
type Manager struct {
	mu      sync.RWMutex
	session Session
	path    string
	dirty   bool
}

// NewManager loads the session from the state directory.
func NewManager() (*Manager, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(path), nil
}

// NewManagerAt loads the session stored at path. A missing or corrupt file
// starts an empty session.
func NewManagerAt(path string) *Manager {
	m := &Manager{
		session: Session{Files: make(map[string]FileState)},
		path:    path,
	}
	m.load()
	return m
}

func sessionPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "rawedit", "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return
	}
	if session.Files == nil {
		session.Files = make(map[string]FileState)
	}
	m.session = session
}

// Save writes the session if anything changed since the last save.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}
	m.prune()
	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *Manager) prune() {
	for len(m.session.Files) > maxFiles {
		var oldest string
		var at time.Time
		for path, st := range m.session.Files {
			if oldest == "" || st.Seen.Before(at) {
				oldest, at = path, st.Seen
			}
		}
		delete(m.session.Files, oldest)
	}
}

// GetFileState returns the saved state for a file.
func (m *Manager) GetFileState(absPath string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.session.Files[absPath]
	return state, ok
}

// SetFileState records the state for a file.
func (m *Manager) SetFileState(absPath string, state FileState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state.Seen.IsZero() {
		state.Seen = time.Now()
	}
	m.session.Files[absPath] = state
	m.dirty = true
}
