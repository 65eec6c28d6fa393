package httpx

import (
	"net/http"
	"strconv"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// UserHandlers provides HTTP handlers for managed platform accounts.
type UserHandlers struct {
	Backend *backend.Client
}

// List handles GET /api/admin/users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	opts := model.UserListOptions{
		ListOptions: model.ListOptions{Search: q.Search, Page: q.Page, PageSize: q.PageSize},
	}
	if raw, ok := q.Filters["roleId"]; ok {
		if roleID, err := strconv.Atoi(raw); err == nil {
			opts.RoleID = &roleID
		}
	}
	if raw, ok := q.Filters["isActive"]; ok {
		active := raw == "true"
		opts.IsActive = &active
	}

	page, err := backendFor(r, h.Backend).Users().List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/admin/users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := backendFor(r, h.Backend).Users().Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Create handles POST /api/admin/users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CreateUserInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name is required"))
		return
	}
	if input.Email == "" {
		WriteAppError(w, apperrors.ValidationField("email", "email is required"))
		return
	}
	if input.Password == "" {
		WriteAppError(w, apperrors.ValidationField("password", "password is required"))
		return
	}

	user, err := backendFor(r, h.Backend).Users().Create(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/admin/users/{id}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input model.UpdateUserInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	user, err := backendFor(r, h.Backend).Users().Update(r.Context(), id, input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/admin/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !confirmDelete(w, r) {
		return
	}
	if err := backendFor(r, h.Backend).Users().Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles POST /api/admin/users/{id}/change-password.
func (h *UserHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		WriteAppError(w, apperrors.ValidationField("newPassword", "new password is required"))
		return
	}
	if err := backendFor(r, h.Backend).Users().ChangePassword(r.Context(), id, req.NewPassword); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
