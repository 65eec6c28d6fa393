package httpx

import (
	"io"
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// maxUploadBytes bounds multipart image uploads.
const maxUploadBytes = 8 << 20

// MealHandlers provides HTTP handlers for meal management.
type MealHandlers struct {
	Backend *backend.Client
}

// List handles GET /api/admin/meals.
func (h *MealHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	opts := model.MealListOptions{
		ListOptions: model.ListOptions{Search: q.Search, Page: q.Page, PageSize: q.PageSize},
		DietType:    q.Filters["dietType"],
		Category:    q.Filters["category"],
	}
	if raw, ok := q.Filters["status"]; ok {
		status := model.MealStatus(raw)
		if !status.Valid() {
			WriteAppError(w, apperrors.ValidationField("status", "unknown meal status"))
			return
		}
		opts.Status = &status
	}

	page, err := backendFor(r, h.Backend).Meals().List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/admin/meals/{id}. The detail view includes the full
// ingredient breakdown.
func (h *MealHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	meal, err := backendFor(r, h.Backend).Meals().Detail(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, meal)
}

// Create handles POST /api/admin/meals.
func (h *MealHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CreateMealInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name is required"))
		return
	}
	if input.Status != "" && !input.Status.Valid() {
		WriteAppError(w, apperrors.ValidationField("status", "unknown meal status"))
		return
	}
	if input.Calories < 0 {
		WriteAppError(w, apperrors.ValidationField("calories", "calories cannot be negative"))
		return
	}

	meal, err := backendFor(r, h.Backend).Meals().Create(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, meal)
}

// Update handles PUT /api/admin/meals/{id}.
func (h *MealHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input model.UpdateMealInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.Status != nil && !input.Status.Valid() {
		WriteAppError(w, apperrors.ValidationField("status", "unknown meal status"))
		return
	}
	meal, err := backendFor(r, h.Backend).Meals().Update(r.Context(), id, input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, meal)
}

// Delete handles DELETE /api/admin/meals/{id}.
func (h *MealHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !confirmDelete(w, r) {
		return
	}
	if err := backendFor(r, h.Backend).Meals().Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/admin/meals/{id}/image.
func (h *MealHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	file, ok := readUpload(w, r, "image")
	if !ok {
		return
	}
	meal, err := backendFor(r, h.Backend).Meals().UploadImage(r.Context(), id, file)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, meal)
}

// readUpload extracts a single multipart file field. On failure it writes
// the error and returns false.
func readUpload(w http.ResponseWriter, r *http.Request, field string) (backend.UploadFile, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteAppError(w, apperrors.ValidationField(field, "a multipart file upload is required"))
		return backend.UploadFile{}, false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		WriteAppError(w, apperrors.ValidationField(field, "file is required"))
		return backend.UploadFile{}, false
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		WriteAppError(w, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to read upload"))
		return backend.UploadFile{}, false
	}
	return backend.UploadFile{Field: field, Filename: header.Filename, Content: content}, true
}
