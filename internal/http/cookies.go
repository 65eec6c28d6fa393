package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookie carries the opaque session ID. Tokens never leave the
	// gateway.
	SessionCookie = "session_id"
	// ClientCookie is the durable anonymous browser identifier that keys
	// the remembered-identity record. It carries no auth whatsoever.
	ClientCookie = "fp_client"

	clientCookieMaxAge = int(400 * 24 * time.Hour / time.Second)
)

// cookieWriter sets and clears the gateway's cookies with consistent
// attributes.
type cookieWriter struct {
	Domain string
	// Secure forces the Secure attribute regardless of how the request
	// arrived. Config turns it off in dev mode.
	Secure bool
}

func (c cookieWriter) isSecure(r *http.Request) bool {
	return c.Secure || r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSession sets the session cookie. Its lifetime mirrors the session
// expiry for remembered sessions; scoped sessions get a browser-session
// cookie that dies with the browsing context.
func (c cookieWriter) setSession(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time, remembered bool) {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		SameSite: http.SameSiteLaxMode,
	}
	if remembered {
		cookie.Expires = expiresAt
	}
	http.SetCookie(w, cookie)
}

// ensureClientID returns the request's client ID, minting and setting one
// when the browser has none yet.
func (c cookieWriter) ensureClientID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(ClientCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		MaxAge:   clientCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// clientID returns the request's client ID without minting one.
func clientID(r *http.Request) string {
	if cookie, err := r.Cookie(ClientCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// sessionID returns the request's session ID, or empty.
func sessionID(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// clear clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (c cookieWriter) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
