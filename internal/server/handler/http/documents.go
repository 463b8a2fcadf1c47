package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/models"
)

// DocumentService defines the document operations used by DocumentHandler.
type DocumentService interface {
	// List returns every document in collection order.
	List(ctx context.Context) ([]models.Document, error)
	// ToggleFavorite flips the favorite flag and returns the updated document.
	ToggleFavorite(ctx context.Context, id string) (*models.Document, error)
	// Delete removes a document by id.
	Delete(ctx context.Context, id string) error
}

// DocumentHandler serves /documents.
type DocumentHandler struct {
	Documents DocumentService
	Log       *zap.Logger
}

// List handles GET /documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Documents.List(r.Context())
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// ToggleFavorite handles PUT /documents/{id}/toggle-favorite.
func (h *DocumentHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Documents.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Log, err, "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /documents/{id} and answers 204 on success.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, h.Log, err, "Document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
