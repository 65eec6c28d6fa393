package httpx

import (
	"log/slog"
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/service"
)

// DashboardHandlers provides HTTP handlers for the dashboard aggregates
// and filter option lists. Cache is shared across requests; the backend
// binding is per-request since it carries the session token.
type DashboardHandlers struct {
	Backend *backend.Client
	Cache   service.ByteCache
	Logger  *slog.Logger
}

func (h *DashboardHandlers) dashboard(r *http.Request) *service.DashboardService {
	return service.NewDashboardService(service.DashboardServiceOptions{
		Source: backendFor(r, h.Backend).Analytics(),
		Cache:  h.Cache,
		Logger: h.Logger,
	})
}

// Stats handles GET /api/admin/stats.
func (h *DashboardHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard(r).Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// Analytics handles GET /api/admin/analytics.
func (h *DashboardHandlers) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.dashboard(r).Analytics(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, analytics)
}

// FilterOptions handles GET /api/filter/{kind}.
func (h *DashboardHandlers) FilterOptions(w http.ResponseWriter, r *http.Request) {
	kind := model.FilterKind(r.PathValue("kind"))
	if !kind.Valid() {
		WriteAppError(w, apperrors.ValidationField("kind", "unknown filter kind"))
		return
	}
	options, err := backendFor(r, h.Backend).Filters().Options(r.Context(), kind)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, options)
}
