package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/ports"
)

// RefreshWindow is the look-ahead inside which a session's tokens are
// proactively refreshed before a backend call would fail on them.
const RefreshWindow = 5 * time.Minute

// DefaultSessionTTL is used when the platform reports no token lifetime at
// all (no expires-in and no exp claim in the access token).
const DefaultSessionTTL = time.Hour

// SessionTiers pairs the two storage tiers. Exactly one tier holds a given
// session; lookups check the persistent tier first, then the scoped one.
// Stale leftovers in the other tier are ignored by this lookup order.
type SessionTiers struct {
	// Persistent survives gateway restarts; selected by "remember me".
	Persistent ports.SessionStore
	// Scoped lives only as long as the gateway process.
	Scoped ports.SessionStore
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Authenticator ports.Authenticator
	Tiers         SessionTiers
	Remember      ports.RememberStore

	// RefreshWindow overrides the refresh look-ahead. Zero means
	// RefreshWindow.
	RefreshWindow time.Duration
	// SessionTTL overrides the fallback session lifetime. Zero means
	// DefaultSessionTTL.
	SessionTTL time.Duration
}

// AuthService is the single source of truth for "is there a usable admin
// session". It is the only component that touches the storage tiers.
type AuthService struct {
	auth          ports.Authenticator
	tiers         SessionTiers
	remember      ports.RememberStore
	refreshWindow time.Duration
	sessionTTL    time.Duration
	now           func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Authenticator == nil {
		panic("Authenticator is required")
	}
	if opts.Tiers.Persistent == nil || opts.Tiers.Scoped == nil {
		panic("both session tiers are required")
	}
	if opts.Remember == nil {
		panic("RememberStore is required")
	}
	refreshWindow := opts.RefreshWindow
	if refreshWindow <= 0 {
		refreshWindow = RefreshWindow
	}
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		auth:          opts.Authenticator,
		tiers:         opts.Tiers,
		remember:      opts.Remember,
		refreshWindow: refreshWindow,
		sessionTTL:    sessionTTL,
		now:           time.Now,
	}
}

// LoginInput groups parameters for a login attempt. ClientID is the
// anonymous browser identifier that keys the remembered-identity record.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
	ClientID   string
}

// Login authenticates credentials against the platform, enforces the admin
// role, and persists the session in exactly one tier. A non-admin principal
// is rejected with an authorization error (not a credential error) and no
// token is persisted anywhere.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domainauth.Session, error) {
	if input.Email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if input.Password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	tokens, profile, err := s.auth.Login(ctx, ports.Credentials{Email: input.Email, Password: input.Password})
	if err != nil {
		return nil, err
	}

	if !profile.IsAdmin() {
		// Discard the token set; only admins get a console session.
		return nil, apperrors.Forbidden("This account does not have administrator access.")
	}

	sess := domainauth.Session{
		ID:           uuid.NewString(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    s.expiryFor(tokens),
		Profile:      profile,
		Remembered:   input.RememberMe,
	}

	if saveErr := s.tierFor(sess).Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	if input.RememberMe && input.ClientID != "" {
		rec := domainauth.RememberedIdentity{Email: input.Email, RememberMe: true}
		if remErr := s.remember.Save(ctx, input.ClientID, rec); remErr != nil {
			return nil, fmt.Errorf("save remembered identity: %w", remErr)
		}
	}

	return &sess, nil
}

// GetSession resolves a session ID against both tiers, persistent first.
// An expired hit is purged from its tier and reported as absent. The
// remembered-identity record is never touched here.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	sess, store, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Valid(s.now()) {
		if deleteErr := store.Delete(ctx, sessionID); deleteErr != nil {
			return nil, fmt.Errorf("purge expired session: %w", deleteErr)
		}
		return nil, apperrors.SessionExpired("Your session has expired. Please sign in again.")
	}

	return &sess, nil
}

// IsAuthenticated reports whether the session ID resolves to a valid
// session in either tier. Expired sessions are purged as a side effect.
func (s *AuthService) IsAuthenticated(ctx context.Context, sessionID string) bool {
	_, err := s.GetSession(ctx, sessionID)
	return err == nil
}

// Restore is the app-start convenience: it returns the session when one is
// still valid, else (nil, false) after any expired state has been purged.
func (s *AuthService) Restore(ctx context.Context, sessionID string) (*domainauth.Session, bool) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, false
	}
	return sess, true
}

// ShouldRefresh reports whether the session's expiry falls inside the
// refresh look-ahead window.
func (s *AuthService) ShouldRefresh(sess *domainauth.Session) bool {
	if sess == nil {
		return false
	}
	return sess.ExpiresWithin(s.now(), s.refreshWindow)
}

// Refresh exchanges the session's refresh token for a new token set,
// sliding the expiry forward in place. A rejected refresh token purges the
// session from storage and yields a session-expired error; the
// remembered-identity record is left intact.
func (s *AuthService) Refresh(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	sess, store, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.auth.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		if deleteErr := store.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(err, fmt.Errorf("purge session: %w", deleteErr))
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSessionExpired, "Your session has expired. Please sign in again.")
	}

	sess.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		sess.RefreshToken = tokens.RefreshToken
	}
	sess.ExpiresAt = s.expiryFor(tokens)

	if saveErr := store.Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save refreshed session: %w", saveErr)
	}

	return &sess, nil
}

// LogoutInput groups parameters for a logout.
type LogoutInput struct {
	SessionID string
	ClientID  string
	// ClearRemembered also removes the remembered-identity record.
	ClearRemembered bool
}

// Logout purges the session from both tiers unconditionally. The
// remembered-identity record survives unless ClearRemembered is set.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.SessionID != "" {
		if err := s.tiers.Persistent.Delete(ctx, input.SessionID); err != nil {
			return fmt.Errorf("delete session from persistent tier: %w", err)
		}
		if err := s.tiers.Scoped.Delete(ctx, input.SessionID); err != nil {
			return fmt.Errorf("delete session from scoped tier: %w", err)
		}
	}

	if input.ClearRemembered && input.ClientID != "" {
		if err := s.remember.Delete(ctx, input.ClientID); err != nil {
			return fmt.Errorf("delete remembered identity: %w", err)
		}
	}

	return nil
}

// RememberedIdentity returns the stored login-form prefill record for a
// client, or an empty record when none exists.
func (s *AuthService) RememberedIdentity(ctx context.Context, clientID string) (domainauth.RememberedIdentity, error) {
	if clientID == "" {
		return domainauth.RememberedIdentity{}, nil
	}
	rec, err := s.remember.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domainauth.RememberedIdentity{}, nil
		}
		return domainauth.RememberedIdentity{}, fmt.Errorf("get remembered identity: %w", err)
	}
	return rec, nil
}

// lookup resolves a session ID to the session and the tier that holds it,
// honoring the persistent-first lookup order.
func (s *AuthService) lookup(ctx context.Context, sessionID string) (domainauth.Session, ports.SessionStore, error) {
	sess, err := s.tiers.Persistent.Get(ctx, sessionID)
	if err == nil {
		return sess, s.tiers.Persistent, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return domainauth.Session{}, nil, fmt.Errorf("get session from persistent tier: %w", err)
	}

	sess, err = s.tiers.Scoped.Get(ctx, sessionID)
	if err == nil {
		return sess, s.tiers.Scoped, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return domainauth.Session{}, nil, fmt.Errorf("get session from scoped tier: %w", err)
	}

	return domainauth.Session{}, nil, apperrors.Unauthorized("authentication required")
}

func (s *AuthService) tierFor(sess domainauth.Session) ports.SessionStore {
	if sess.Remembered {
		return s.tiers.Persistent
	}
	return s.tiers.Scoped
}

// expiryFor derives the absolute expiry instant from the platform's token
// response: the relative expires-in when present, else the access token's
// JWT exp claim, else a fixed fallback TTL.
func (s *AuthService) expiryFor(tokens ports.TokenSet) time.Time {
	if tokens.ExpiresIn > 0 {
		return s.now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}
	if exp, ok := jwtExpiry(tokens.AccessToken); ok {
		return exp
	}
	return s.now().Add(s.sessionTTL)
}

// jwtExpiry extracts the exp claim from an access token without verifying
// the signature. The gateway never trusts the claim for authorization; it
// only uses it to schedule refreshes when the login payload omitted
// expires-in.
func jwtExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
