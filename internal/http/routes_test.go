package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpick/admin-gateway/internal/backend"
	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	mockauth "github.com/fitpick/admin-gateway/internal/mocks/auth"
	"github.com/fitpick/admin-gateway/internal/ports"
	"github.com/fitpick/admin-gateway/internal/service"
)

// routerFixture wires a full router against a fake platform API.
type routerFixture struct {
	router   http.Handler
	platform *fakePlatform
}

// fakePlatform impersonates the FitPick backend: it records requests and
// serves canned envelope responses keyed by method+path.
type fakePlatform struct {
	t         *testing.T
	responses map[string]string
	requests  []*http.Request
	lastAuth  string
	lastBody  []byte
}

func (f *fakePlatform) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r)
		f.lastAuth = r.Header.Get("Authorization")
		f.lastBody, _ = io.ReadAll(r.Body)
		key := r.Method + " " + r.URL.Path
		body, ok := f.responses[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"no such route"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func newRouterFixture(t *testing.T, responses map[string]string) *routerFixture {
	t.Helper()

	platform := &fakePlatform{t: t, responses: responses}
	upstream := httptest.NewServer(platform.handler())
	t.Cleanup(upstream.Close)

	client := backend.NewClient(backend.ClientOptions{BaseURL: upstream.URL, Logger: testLogger()})

	persistent := mockauth.NewMemorySessionStore()
	scoped := mockauth.NewMemorySessionStore()
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Authenticator: &backendAuthenticator{client: client},
		Tiers:         service.SessionTiers{Persistent: persistent, Scoped: scoped},
		Remember:      mockauth.NewMemoryRememberStore(),
	})

	router := NewRouter(RouterServices{
		Auth:    authSvc,
		Backend: client,
		Logger:  testLogger(),
	})

	return &routerFixture{router: router, platform: platform}
}

// backendAuthenticator adapts the backend auth API to the port.
type backendAuthenticator struct{ client *backend.Client }

func (b *backendAuthenticator) Login(ctx context.Context, creds ports.Credentials) (ports.TokenSet, domainauth.Profile, error) {
	return b.client.Auth().Login(ctx, creds)
}

func (b *backendAuthenticator) Refresh(ctx context.Context, refreshToken string) (ports.TokenSet, error) {
	return b.client.Auth().Refresh(ctx, refreshToken)
}

func (f *routerFixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@fitpick.io","password":"secret"}`))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie after login")
	return nil
}

const loginEnvelope = `{"success":true,"data":{
	"accessToken":"platform-token","refreshToken":"refresh","expiresIn":3600,
	"user":{"id":7,"name":"Admin","email":"admin@fitpick.io","roleId":4}}}`

func TestRouter_LoginThenListUsers(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login": loginEnvelope,
		"GET /api/admin/users": `{"success":true,"data":{
			"items":[{"id":"u1","name":"Alice","email":"alice@fitpick.io","roleId":2}],
			"totalItems":25,"totalPages":3,"pageSize":10,"pageNumber":1}}`,
	})

	cookie := f.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?search=ali&pageNumber=1", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Items      []json.RawMessage `json:"items"`
		TotalItems int               `json:"totalItems"`
		TotalPages int               `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)

	assert.Equal(t, "Bearer platform-token", f.platform.lastAuth,
		"resource calls carry the session's platform token")
}

func TestRouter_UnauthenticatedResourceAccess(t *testing.T) {
	f := newRouterFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_DeleteRequiresConfirmation(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login":       loginEnvelope,
		"DELETE /api/admin/meals/m1": `{"success":true,"data":{}}`,
	})
	cookie := f.login(t)

	// Without the literal confirmation the request never leaves the gateway.
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/meals/m1", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A lowercase confirmation is rejected too.
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/meals/m1?confirm=delete", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/meals/m1?confirm=DELETE", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}

func TestRouter_BlogStatusFilter(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login": loginEnvelope,
		"GET /api/blogs": `{"success":true,"data":{
			"items":[],"totalItems":0,"totalPages":0,"pageSize":10,"pageNumber":1}}`,
	})
	cookie := f.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/blogs?status=published", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/admin/blogs?status=bogus", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_TransactionSettlementGuard(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login": loginEnvelope,
		"GET /api/admin/transactions/tx1": `{"success":true,"data":{
			"id":"tx1","userId":"u1","amount":29.99,"currency":"USD","status":"PAID"}}`,
	})
	cookie := f.login(t)

	// PAID -> PENDING is forbidden; the platform is never asked to update.
	req := httptest.NewRequest(http.MethodPut, "/api/admin/transactions/tx1",
		strings.NewReader(`{"status":"PENDING"}`))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	for _, r := range f.platform.requests {
		assert.NotEqual(t, http.MethodPut, r.Method, "no update reached the platform")
	}
}

func TestRouter_ProfileUpdate(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login": loginEnvelope,
		"PUT /api/auth/profile": `{"success":true,"data":{
			"id":7,"name":"Renamed","email":"admin@fitpick.io","roleId":4}}`,
	})
	cookie := f.login(t)

	req := httptest.NewRequest(http.MethodPut, "/auth/profile",
		strings.NewReader(`{"name":"Renamed"}`))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Renamed")
	assert.Equal(t, "Bearer platform-token", f.platform.lastAuth,
		"profile updates carry the session's platform token")

	// An empty update never leaves the gateway.
	before := len(f.platform.requests)
	req = httptest.NewRequest(http.MethodPut, "/auth/profile", strings.NewReader(`{}`))
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, f.platform.requests, before)
}

func TestRouter_ChangePassword(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login":           loginEnvelope,
		"POST /api/auth/change-password": `{"success":true,"data":{}}`,
	})
	cookie := f.login(t)

	// Missing current password is rejected locally.
	req := httptest.NewRequest(http.MethodPost, "/auth/change-password",
		strings.NewReader(`{"newPassword":"n3w-secret"}`))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/change-password",
		strings.NewReader(`{"currentPassword":"secret","newPassword":"n3w-secret"}`))
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "success")
	assert.Contains(t, string(f.platform.lastBody), "n3w-secret")
}

func TestRouter_RegisterRequiresSession(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login": loginEnvelope,
		"POST /api/auth/register": `{"success":true,"data":{
			"id":9,"name":"New Member","email":"member@fitpick.io","roleId":2}}`,
	})

	body := `{"name":"New Member","email":"member@fitpick.io","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := f.login(t)
	req = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "member@fitpick.io")

	// Registration with a missing field stops at the gateway.
	before := len(f.platform.requests)
	req = httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"name":"No Email","password":"secret"}`))
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, f.platform.requests, before)
}

func TestRouter_Healthz(t *testing.T) {
	f := newRouterFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_FilterOptions(t *testing.T) {
	f := newRouterFixture(t, map[string]string{
		"POST /api/auth/login": loginEnvelope,
		"GET /api/filter/diet-types": `{"success":true,"data":[
			{"value":"keto","label":"Keto"},{"value":"vegan","label":"Vegan"}]}`,
	})
	cookie := f.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/filter/diet-types", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "keto")

	req = httptest.NewRequest(http.MethodGet, "/api/filter/unknown-kind", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
