// Package session holds runtime state for the active drawing client.
package session

import "sync"

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated  bool
	InputEnabled   bool
	PreviewEnabled bool
}

// Session holds runtime state for the active drawing client.
type Session struct {
	mu             sync.RWMutex
	password       string
	authenticated  bool
	inputEnabled   bool
	previewEnabled bool
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{
		password:       password,
		inputEnabled:   true,
		previewEnabled: true,
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetInputEnabled toggles whether input events reach the trackers.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether input events reach the trackers.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetPreviewEnabled toggles publishing of raster previews.
func (s *Session) SetPreviewEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previewEnabled = enabled
}

// PreviewEnabled reports whether raster previews are published.
func (s *Session) PreviewEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.previewEnabled
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated:  s.authenticated,
		InputEnabled:   s.inputEnabled,
		PreviewEnabled: s.previewEnabled,
	}
}
