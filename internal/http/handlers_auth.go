package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	"github.com/fitpick/admin-gateway/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, input service.LoginInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Refresh(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, input service.LogoutInput) error
	RememberedIdentity(ctx context.Context, clientID string) (domainauth.RememberedIdentity, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Cookies cookieWriter
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domainauth.Profile `json:"user,omitempty"`
	ExpiresAt     string              `json:"expiresAt,omitempty"`
}

// Login handles the credential login endpoint.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cid := h.Cookies.ensureClientID(w, r)
	session, err := h.Svc.Login(r.Context(), service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
		ClientID:   cid,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Cookies.setSession(w, r, session.ID, session.ExpiresAt, session.Remembered)
	WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &session.Profile,
		ExpiresAt:     session.ExpiresAt.UTC().Format(timeLayout),
	})
}

type logoutRequest struct {
	// ClearRememberMe also forgets the stored login-form prefill.
	ClearRememberMe bool `json:"clearRememberMe"`
}

// Logout handles the logout endpoint. A missing or already dead session is
// not an error; logout is idempotent.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	err := h.Svc.Logout(r.Context(), service.LogoutInput{
		SessionID:       sessionID(r),
		ClientID:        clientID(r),
		ClearRemembered: req.ClearRememberMe,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}

	h.Cookies.clear(w, r, SessionCookie)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Refresh forces a token refresh for the current session.
// POST /auth/refresh.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	session, err := h.Svc.Refresh(r.Context(), id)
	if err != nil {
		h.Cookies.clear(w, r, SessionCookie)
		WriteAppError(w, err)
		return
	}

	h.Cookies.setSession(w, r, session.ID, session.ExpiresAt, session.Remembered)
	WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &session.Profile,
		ExpiresAt:     session.ExpiresAt.UTC().Format(timeLayout),
	})
}

// Session reports the current authentication status. Used by the console on
// startup to restore a session from the cookie.
// GET /auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), id)
	if err != nil {
		// Session is invalid or expired, clear the cookie.
		h.Cookies.clear(w, r, SessionCookie)
		WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &session.Profile,
		ExpiresAt:     session.ExpiresAt.UTC().Format(timeLayout),
	})
}

// Remembered returns the stored login-form prefill for this browser.
// GET /auth/remembered.
func (h *AuthHandlers) Remembered(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Svc.RememberedIdentity(r.Context(), clientID(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
