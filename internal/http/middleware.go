package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver is the slice of the auth service the middleware needs.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	ShouldRefresh(sess *domainauth.Session) bool
	Refresh(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// RequireAuth returns a middleware that requires a valid session cookie.
// Sessions near their token expiry are refreshed in-line before the request
// proceeds, so downstream backend calls never ride a token about to lapse.
// If the refresh is rejected the request fails as expired.
func RequireAuth(authSvc SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionID(r)
			if id == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			session, err := authSvc.GetSession(r.Context(), id)
			if err != nil {
				WriteAppError(w, err)
				return
			}

			if authSvc.ShouldRefresh(session) {
				refreshed, refreshErr := authSvc.Refresh(r.Context(), id)
				if refreshErr != nil {
					WriteAppError(w, refreshErr)
					return
				}
				logger.Debug("session refreshed",
					slog.String("session_id", id),
					slog.Time("expires_at", refreshed.ExpiresAt))
				session = refreshed
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientID returns a middleware that guarantees every response carries the
// anonymous client-ID cookie.
func ClientID(cookies cookieWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := cookies.ensureClientID(w, r)
			if _, err := r.Cookie(ClientCookie); err != nil {
				// Make the minted ID visible to downstream handlers in the
				// same request.
				r.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
			}
			next.ServeHTTP(w, r)
		})
	}
}
