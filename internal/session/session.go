// Package session tracks the one editor session a user may have open at a
// time. A session is a draft: nothing it holds reaches the store until the
// workflow saves it, so abandoning one loses at most the unsaved text.
package session

import (
	"sync"

	"eventcraft/internal/event"
)

// Session is the state captured while a user edits one binding's code.
// Index is nil for a brand-new binding and set once the first save lands,
// so repeated saves keep hitting the same binding. Code is the snapshot
// loaded into the editor, not the live store value.
type Session struct {
	Object      event.ObjectRef
	EventName   string
	Index       *int
	Code        string
	Description string
}

// Manager keys sessions by user name. Opening a session for a user who
// already has one replaces it; the old draft is simply dropped.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Open(user string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[user] = s
}

func (m *Manager) Get(user string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[user]
}

func (m *Manager) Clear(user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, user)
}
