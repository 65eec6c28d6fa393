package auth

// Package auth contains domain-level types for admin sessions.
// It is pure and free of transport/adapter concerns.

import "time"

// AdminRoleID is the platform role identifier required for console access.
// The FitPick backend models roles as small integers; 4 is the admin role.
const AdminRoleID = 4

// Profile is the snapshot of the authenticated principal returned by the
// platform at login time. It is stored alongside the tokens and never
// re-derived locally.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p Profile) IsAdmin() bool { return p.RoleID == AdminRoleID }

// Session is the record we hold for an authenticated admin: the platform
// token pair, the absolute expiry instant derived from the platform's
// relative expires-in at login, and the profile snapshot.
// ID is an opaque session identifier (random URL-safe string) handed to the
// browser; tokens never leave the gateway.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Profile      Profile   `json:"profile"`
	// Remembered records which storage tier holds this session. A remembered
	// session lives in the persistent tier and survives gateway restarts.
	Remembered bool `json:"remembered"`
}

// Valid reports whether the session is usable: a token is present and the
// expiry instant has not passed. An expired session is treated as absent.
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && now.Before(s.ExpiresAt)
}

// ExpiresWithin reports whether the session expires inside the given
// look-ahead window. Callers use this to refresh proactively before a
// request would otherwise fail.
func (s Session) ExpiresWithin(now time.Time, window time.Duration) bool {
	return !now.Add(window).Before(s.ExpiresAt)
}

// RememberedIdentity is the durable, expiry-less record used only to
// prepopulate the login form. It is independent of session validity and
// survives logouts unless explicitly cleared.
type RememberedIdentity struct {
	Email      string `json:"email"`
	RememberMe bool   `json:"remember_me"`
}
