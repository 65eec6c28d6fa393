package memstore

// Package memstore provides the in-process scoped session tier. Sessions
// saved here live only as long as the gateway process, mirroring
// browsing-context-scoped storage: no "remember me", no survival across
// restarts.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	"github.com/fitpick/admin-gateway/internal/ports"
)

// SessionStore is a mutex-guarded in-memory session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewSessionStore creates an empty scoped session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}

	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// PurgeExpired removes sessions whose expiry has passed and reports how
// many were removed. Get already drops expired entries lazily; the sweep
// keeps abandoned sessions from accumulating.
func (s *SessionStore) PurgeExpired() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, expired ones included.
// Used by tests and the health endpoint.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ErrNotFound is returned when a session is not found. It aliases the
// ports sentinel so the service layer can test for a miss without knowing
// the tier.
var ErrNotFound = ports.ErrNotFound

var errEmptyID = errors.New("session ID cannot be empty")
