package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/middleware"
	"github.com/helppsico/mockapi/internal/models"
)

// ReviewService defines the review operations used by ReviewHandler.
type ReviewService interface {
	ListBySubject(ctx context.Context, psicologoID string) ([]models.Review, error)
	Create(ctx context.Context, review models.Review) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

// ReviewHandler serves /reviews.
type ReviewHandler struct {
	Reviews ReviewService
	Log     *zap.Logger
}

// CreateReviewResponse is returned by POST /reviews.
type CreateReviewResponse struct {
	Message string        `json:"message"`
	Review  models.Review `json:"review"`
}

// ListBySubject handles GET /reviews/{subjectId}.
func (h *ReviewHandler) ListBySubject(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListBySubject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// Create handles POST /reviews. The body must carry id, psicologoId (or
// subjectId), userName and rating.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	created, err := h.Reviews.Create(r.Context(), review)
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, CreateReviewResponse{
		Message: "Review added successfully",
		Review:  *created,
	})
}

// Delete handles DELETE /reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, h.Log, err, "Review not found")
		return
	}
	writeJSON(w, http.StatusOK, middleware.ErrorBody{Message: "Review deleted successfully"})
}
