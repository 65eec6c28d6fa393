package httpx

import (
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// BlogHandlers provides HTTP handlers for blog post management.
type BlogHandlers struct {
	Backend *backend.Client
}

// List handles GET /api/admin/blogs. The status filter accepts
// "published" or "draft".
func (h *BlogHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	opts := model.BlogListOptions{
		ListOptions: model.ListOptions{Search: q.Search, Page: q.Page, PageSize: q.PageSize},
		Category:    q.Filters["category"],
	}
	switch q.Filters["status"] {
	case "":
	case "published":
		published := true
		opts.Published = &published
	case "draft":
		published := false
		opts.Published = &published
	default:
		WriteAppError(w, apperrors.ValidationField("status", `status must be "published" or "draft"`))
		return
	}

	page, err := backendFor(r, h.Backend).Blogs().List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/admin/blogs/{id}.
func (h *BlogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	blog, err := backendFor(r, h.Backend).Blogs().Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, blog)
}

// Create handles POST /api/admin/blogs.
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CreateBlogInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if input.Title == "" {
		WriteAppError(w, apperrors.ValidationField("title", "title is required"))
		return
	}
	if input.Content == "" {
		WriteAppError(w, apperrors.ValidationField("content", "content is required"))
		return
	}

	blog, err := backendFor(r, h.Backend).Blogs().Create(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, blog)
}

// Update handles PUT /api/admin/blogs/{id}.
func (h *BlogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input model.UpdateBlogInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	blog, err := backendFor(r, h.Backend).Blogs().Update(r.Context(), id, input)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, blog)
}

// SetStatus handles PATCH /api/admin/blogs/{id}/status.
func (h *BlogHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Published bool `json:"status"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	blog, err := backendFor(r, h.Backend).Blogs().SetStatus(r.Context(), id, req.Published)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, blog)
}

// Delete handles DELETE /api/admin/blogs/{id}.
func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !confirmDelete(w, r) {
		return
	}
	if err := backendFor(r, h.Backend).Blogs().Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Categories handles GET /api/admin/blogs/categories.
func (h *BlogHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := backendFor(r, h.Backend).Blogs().Categories(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

// Stats handles GET /api/admin/blogs/stats.
func (h *BlogHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := backendFor(r, h.Backend).Blogs().Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// UploadImage handles POST /api/admin/blogs/{id}/image.
func (h *BlogHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	file, ok := readUpload(w, r, "image")
	if !ok {
		return
	}
	blog, err := backendFor(r, h.Backend).Blogs().UploadImage(r.Context(), id, file)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, blog)
}
