package httpx

import (
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// IngredientHandlers provides HTTP handlers for ingredient management.
type IngredientHandlers struct {
	Backend *backend.Client
}

// List handles GET /api/admin/ingredients.
func (h *IngredientHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	opts := model.IngredientListOptions{
		ListOptions: model.ListOptions{Search: q.Search, Page: q.Page, PageSize: q.PageSize},
		Category:    q.Filters["category"],
	}
	page, err := backendFor(r, h.Backend).Ingredients().List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/admin/ingredients/{id}.
func (h *IngredientHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ingredient, err := backendFor(r, h.Backend).Ingredients().Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ingredient)
}

// Create handles POST /api/admin/ingredients.
func (h *IngredientHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CreateIngredientInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name is required"))
		return
	}

	ingredient, err := backendFor(r, h.Backend).Ingredients().Create(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ingredient)
}

// Update handles PUT /api/admin/ingredients/{id}.
func (h *IngredientHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input model.UpdateIngredientInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	ingredient, err := backendFor(r, h.Backend).Ingredients().Update(r.Context(), id, input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ingredient)
}

// Delete handles DELETE /api/admin/ingredients/{id}.
func (h *IngredientHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !confirmDelete(w, r) {
		return
	}
	if err := backendFor(r, h.Backend).Ingredients().Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
