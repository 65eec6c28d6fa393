package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	"github.com/fitpick/admin-gateway/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Authenticator = (*MockAuthenticator)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.RememberStore = (*MemoryRememberStore)(nil)
)

// MockAuthenticator simulates the platform auth API for tests.
type MockAuthenticator struct {
	LoginFunc   func(ctx context.Context, creds ports.Credentials) (ports.TokenSet, domainauth.Profile, error)
	RefreshFunc func(ctx context.Context, refreshToken string) (ports.TokenSet, error)

	// Deterministic values used when the func fields are nil.
	Tokens  ports.TokenSet
	Profile domainauth.Profile

	// Internal state tracking for deterministic behavior
	loginCalls   int
	refreshCalls int
}

// NewMockAuthenticator creates a MockAuthenticator with sensible defaults:
// an admin profile and a one-hour token lifetime.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{
		Tokens: ports.TokenSet{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresIn:    3600,
		},
		Profile: domainauth.Profile{
			ID:     "mock-admin-1",
			Name:   "Mock Admin",
			Email:  "mock.admin@example.com",
			RoleID: domainauth.AdminRoleID,
		},
	}
}

func (m *MockAuthenticator) Login(ctx context.Context, creds ports.Credentials) (ports.TokenSet, domainauth.Profile, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	m.loginCalls++
	return m.Tokens, m.Profile, nil
}

func (m *MockAuthenticator) Refresh(ctx context.Context, refreshToken string) (ports.TokenSet, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	m.refreshCalls++
	tokens := m.Tokens
	tokens.AccessToken = fmt.Sprintf("access-refreshed-%d", m.refreshCalls)
	tokens.RefreshToken = fmt.Sprintf("refresh-rotated-%d", m.refreshCalls)
	return tokens, nil
}

// LoginCalls reports how many default-path logins were performed.
func (m *MockAuthenticator) LoginCalls() int { return m.loginCalls }

// RefreshCalls reports how many default-path refreshes were performed.
func (m *MockAuthenticator) RefreshCalls() int { return m.refreshCalls }

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session

	// SaveErr, when set, is returned by Save to simulate storage failures.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// MemoryRememberStore is an in-memory remembered-identity store for tests.
type MemoryRememberStore struct {
	records map[string]domainauth.RememberedIdentity
}

// NewMemoryRememberStore creates a new in-memory remembered-identity store.
func NewMemoryRememberStore() *MemoryRememberStore {
	return &MemoryRememberStore{
		records: make(map[string]domainauth.RememberedIdentity),
	}
}

func (m *MemoryRememberStore) Save(_ context.Context, clientID string, rec domainauth.RememberedIdentity) error {
	if clientID == "" {
		return errors.New("client ID cannot be empty")
	}
	m.records[clientID] = rec
	return nil
}

func (m *MemoryRememberStore) Get(_ context.Context, clientID string) (domainauth.RememberedIdentity, error) {
	rec, ok := m.records[clientID]
	if !ok {
		return domainauth.RememberedIdentity{}, ports.ErrNotFound
	}
	return rec, nil
}

func (m *MemoryRememberStore) Delete(_ context.Context, clientID string) error {
	delete(m.records, clientID)
	return nil
}

// Len reports the number of stored records.
func (m *MemoryRememberStore) Len() int { return len(m.records) }
