package config

import "time"

// AuthConfig contains session lifecycle configuration.
type AuthConfig struct {
	// SessionTTL is the fallback session lifetime used when the platform
	// reports no token expiry at all.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"1h"`

	// RefreshWindow is the look-ahead inside which tokens are refreshed
	// before they expire.
	RefreshWindow time.Duration `env:"AUTH_REFRESH_WINDOW" envDefault:"5m"`

	// CookieSecure marks the session cookie Secure. Disabled automatically
	// in dev mode.
	CookieSecure bool `env:"AUTH_COOKIE_SECURE" envDefault:"true"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = time.Hour
	}
	if a.RefreshWindow <= 0 {
		a.RefreshWindow = 5 * time.Minute
	}
	// The refresh window must be shorter than the session itself or every
	// request would trigger a refresh.
	if a.RefreshWindow >= a.SessionTTL {
		a.RefreshWindow = a.SessionTTL / 2
	}
}
