package httpx

import (
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// ProfileHandlers provides HTTP handlers for the signed-in principal's own
// account: profile edits, password changes, and account registration.
type ProfileHandlers struct {
	Backend *backend.Client
}

// Update handles PUT /auth/profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var input backend.UpdateProfileInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.Name == nil && input.Email == nil {
		WriteAppError(w, apperrors.Validation("nothing to update"))
		return
	}

	profile, err := backendFor(r, h.Backend).Auth().UpdateProfile(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// ChangePassword handles POST /auth/change-password.
func (h *ProfileHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input backend.ChangePasswordInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.CurrentPassword == "" {
		WriteAppError(w, apperrors.ValidationField("currentPassword", "current password is required"))
		return
	}
	if input.NewPassword == "" {
		WriteAppError(w, apperrors.ValidationField("newPassword", "new password is required"))
		return
	}

	if err := backendFor(r, h.Backend).Auth().ChangePassword(r.Context(), input); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Register handles POST /auth/register.
func (h *ProfileHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var input backend.RegisterInput
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

	profile, err := backendFor(r, h.Backend).Auth().Register(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, profile)
}
