// Package session provides an in-memory server-side session store keyed by
// opaque tokens. A token carries exactly one fact: which user it
// authenticates. There are no roles or scopes.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the session lifetime applied when NewStore receives a
// non-positive TTL.
const DefaultTTL = 24 * time.Hour

type entry struct {
	userID    string
	expiresAt time.Time
}

// Store is an in-memory session store, safe for concurrent use.
// Sessions are lost on service restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create registers a new session for the user and returns its opaque token.
func (s *Store) Create(userID string) string {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = entry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token
}

// Get resolves a token to its user. Expired sessions are treated as absent
// and pruned on the spot.
func (s *Store) Get(token string) (string, bool) {
	s.mu.RLock()
	e, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		s.Destroy(token)
		return "", false
	}
	return e.userID, true
}

// Destroy removes a session. Destroying an unknown token is a no-op.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}
