package httpx

import (
	"log/slog"
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    *service.AuthService
	Backend *backend.Client
	// Cache is optional; without it dashboard reads always hit the platform.
	Cache        service.ByteCache
	CookieDomain string
	CookieSecure bool
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	cookies := cookieWriter{Domain: services.CookieDomain, Secure: services.CookieSecure}

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: cookies, Logger: logger}
	profileHandlers := &ProfileHandlers{Backend: services.Backend}
	userHandlers := &UserHandlers{Backend: services.Backend}
	mealHandlers := &MealHandlers{Backend: services.Backend}
	ingredientHandlers := &IngredientHandlers{Backend: services.Backend}
	blogHandlers := &BlogHandlers{Backend: services.Backend}
	transactionHandlers := &TransactionHandlers{Backend: services.Backend}
	dashboardHandlers := &DashboardHandlers{Backend: services.Backend, Cache: services.Cache, Logger: logger}

	registerAuthRoutes(mux, authHandlers)
	authed := RequireAuth(services.Auth, logger)
	registerProfileRoutes(mux, profileHandlers, authed)
	registerUserRoutes(mux, userHandlers, authed)
	registerMealRoutes(mux, mealHandlers, authed)
	registerIngredientRoutes(mux, ingredientHandlers, authed)
	registerBlogRoutes(mux, blogHandlers, authed)
	registerTransactionRoutes(mux, transactionHandlers, authed)
	registerDashboardRoutes(mux, dashboardHandlers, authed)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = ClientID(cookies)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

type middleware = func(http.Handler) http.Handler

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("POST /auth/refresh", h.Refresh)
	mux.HandleFunc("GET /auth/session", h.Session)
	mux.HandleFunc("GET /auth/remembered", h.Remembered)
}

func registerProfileRoutes(mux *http.ServeMux, h *ProfileHandlers, authed middleware) {
	mux.Handle("POST /auth/register", authed(http.HandlerFunc(h.Register)))
	mux.Handle("PUT /auth/profile", authed(http.HandlerFunc(h.Update)))
	mux.Handle("POST /auth/change-password", authed(http.HandlerFunc(h.ChangePassword)))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, authed middleware) {
	mux.Handle("GET /api/admin/users", authed(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/admin/users", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/admin/users/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/admin/users/{id}", authed(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/users/{id}", authed(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/admin/users/{id}/change-password", authed(http.HandlerFunc(h.ChangePassword)))
}

func registerMealRoutes(mux *http.ServeMux, h *MealHandlers, authed middleware) {
	mux.Handle("GET /api/admin/meals", authed(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/admin/meals", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/admin/meals/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/admin/meals/{id}", authed(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/meals/{id}", authed(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/admin/meals/{id}/image", authed(http.HandlerFunc(h.UploadImage)))
}

func registerIngredientRoutes(mux *http.ServeMux, h *IngredientHandlers, authed middleware) {
	mux.Handle("GET /api/admin/ingredients", authed(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/admin/ingredients", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/admin/ingredients/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/admin/ingredients/{id}", authed(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/ingredients/{id}", authed(http.HandlerFunc(h.Delete)))
}

func registerBlogRoutes(mux *http.ServeMux, h *BlogHandlers, authed middleware) {
	mux.Handle("GET /api/admin/blogs", authed(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/admin/blogs", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/admin/blogs/categories", authed(http.HandlerFunc(h.Categories)))
	mux.Handle("GET /api/admin/blogs/stats", authed(http.HandlerFunc(h.Stats)))
	mux.Handle("GET /api/admin/blogs/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/admin/blogs/{id}", authed(http.HandlerFunc(h.Update)))
	mux.Handle("PATCH /api/admin/blogs/{id}/status", authed(http.HandlerFunc(h.SetStatus)))
	mux.Handle("DELETE /api/admin/blogs/{id}", authed(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/admin/blogs/{id}/image", authed(http.HandlerFunc(h.UploadImage)))
}

func registerTransactionRoutes(mux *http.ServeMux, h *TransactionHandlers, authed middleware) {
	mux.Handle("GET /api/admin/transactions", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/transactions/user/{id}", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/transactions/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/admin/transactions/{id}", authed(http.HandlerFunc(h.UpdateStatus)))
	mux.Handle("DELETE /api/admin/transactions/{id}", authed(http.HandlerFunc(h.Delete)))
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, authed middleware) {
	mux.Handle("GET /api/admin/stats", authed(http.HandlerFunc(h.Stats)))
	mux.Handle("GET /api/admin/analytics", authed(http.HandlerFunc(h.Analytics)))
	mux.Handle("GET /api/filter/{kind}", authed(http.HandlerFunc(h.FilterOptions)))
}
