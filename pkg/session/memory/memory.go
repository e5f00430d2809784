// Package memory implements an in-memory session store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"nursery/pkg/session"
)

var _ session.Store = (*Store)(nil)

type entry struct {
	user    string
	expires time.Time
}

// Store keeps sessions in a map. Expired entries are dropped on lookup.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

// New creates an empty session store.
func New() *Store {
	return &Store{sessions: make(map[string]entry), now: time.Now}
}

// Create stores a new session for user.
func (s *Store) Create(ctx context.Context, user string, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Key(id)] = entry{user: user, expires: s.now().Add(ttl)}
	return id, nil
}

// Lookup returns the user owning the session.
func (s *Store) Lookup(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := session.Key(id)
	e, ok := s.sessions[key]
	if !ok {
		return "", session.ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, key)
		return "", session.ErrNotFound
	}
	return e.user, nil
}
