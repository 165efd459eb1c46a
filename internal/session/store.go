// Package session holds the current authenticated session for the lifetime of
// the process. The Store is passed explicitly to whatever needs it.
package session

import (
	"sync"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// Store holds a single Session value. Concurrent writers are not ordered:
// the last Set or Clear wins.
type Store struct {
	mu      sync.RWMutex
	current domain.Session
}

// New returns an empty (unauthenticated) store.
func New() *Store {
	return &Store{}
}

// Get returns the current session.
func (s *Store) Get() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the current session.
func (s *Store) Set(sess domain.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

// Clear drops the session; the token becomes the empty string.
func (s *Store) Clear() {
	s.Set(domain.Session{})
}

// Authenticated reports whether the current session carries a token.
func (s *Store) Authenticated() bool {
	return s.Get().Authenticated()
}
