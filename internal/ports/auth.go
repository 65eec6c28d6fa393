package ports

// Package ports defines interfaces (hexagonal ports) for session and
// identity persistence. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
)

// ErrNotFound is returned by store lookups when no record exists for the
// key. Both storage tiers and the remember store share this sentinel so
// callers can distinguish a miss from an outage.
var ErrNotFound = errors.New("not found")

// SessionStore persists and retrieves admin sessions for one storage tier.
// The gateway runs two tiers side by side: a persistent tier that survives
// restarts ("remember me") and a scoped tier that dies with the process.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RememberStore persists remembered-identity records keyed by an anonymous
// client identifier. Records have no expiry and are independent of any
// session.
type RememberStore interface {
	Save(ctx context.Context, clientID string, rec domainauth.RememberedIdentity) error
	Get(ctx context.Context, clientID string) (domainauth.RememberedIdentity, error)
	Delete(ctx context.Context, clientID string) error
}

// TokenSet is the platform's token response, already normalized: the
// relative expires-in has been resolved where possible.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the relative lifetime in seconds as reported by the
	// platform; zero when the payload omitted it.
	ExpiresIn int
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// Authenticator exchanges credentials or refresh tokens for platform
// tokens. The backend REST client implements this port.
type Authenticator interface {
	// Login authenticates credentials and returns the token set plus the
	// principal's profile snapshot.
	Login(ctx context.Context, creds Credentials) (TokenSet, domainauth.Profile, error)

	// Refresh exchanges a refresh token for a new token set.
	Refresh(ctx context.Context, refreshToken string) (TokenSet, error)
}
