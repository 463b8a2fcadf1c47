package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/models"
)

// DashboardService builds the home screen summary.
type DashboardService interface {
	Summary(ctx context.Context) (*models.Dashboard, error)
}

// NotificationService lists notifications.
type NotificationService interface {
	List(ctx context.Context) ([]models.Notification, error)
}

// FeedHandler serves the read-only aggregate views.
type FeedHandler struct {
	DashboardService    DashboardService
	NotificationService NotificationService
	Log                 *zap.Logger
}

// Dashboard handles GET /dashboard.
func (h *FeedHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.DashboardService.Summary(r.Context())
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Notifications handles GET /notifications.
func (h *FeedHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.NotificationService.List(r.Context())
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
