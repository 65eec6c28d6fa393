package httpx

import (
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/service"
)

// TransactionHandlers provides HTTP handlers for payment transactions.
// Status changes go through the settlement guard, never straight to the
// backend.
type TransactionHandlers struct {
	Backend *backend.Client
}

// List handles GET /api/admin/transactions and
// GET /api/admin/transactions/user/{id}.
func (h *TransactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	opts := model.TransactionListOptions{
		ListOptions: model.ListOptions{Search: q.Search, Page: q.Page, PageSize: q.PageSize},
		UserID:      r.PathValue("id"),
	}
	if raw, ok := q.Filters["status"]; ok {
		status := model.TransactionStatus(raw)
		if !status.Valid() {
			WriteAppError(w, apperrors.ValidationField("status", "unknown transaction status"))
			return
		}
		opts.Status = &status
	}

	page, err := backendFor(r, h.Backend).Transactions().List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/admin/transactions/{id}.
func (h *TransactionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tx, err := backendFor(r, h.Backend).Transactions().Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tx)
}

// UpdateStatus handles PUT /api/admin/transactions/{id}.
func (h *TransactionHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status model.TransactionStatus `json:"status"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	guard := service.NewTransactionService(backendFor(r, h.Backend).Transactions())
	tx, err := guard.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tx)
}

// Delete handles DELETE /api/admin/transactions/{id}.
func (h *TransactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !confirmDelete(w, r) {
		return
	}
	if err := backendFor(r, h.Backend).Transactions().Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
