package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/middleware"
	"github.com/helppsico/mockapi/internal/models"
)

// SessionService defines the session queries used by SessionHandler.
type SessionService interface {
	ListByPatient(ctx context.Context, patientID string) ([]models.Session, error)
	RandomNext(ctx context.Context, patientID string) (*models.Session, error)
}

// SessionHandler serves the caller's sessions. Its routes sit behind
// middleware.BearerAuth.
type SessionHandler struct {
	Sessions SessionService
	Log      *zap.Logger
}

// List handles GET /sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgNoToken)
		return
	}

	sessions, err := h.Sessions.ListByPatient(r.Context(), claims.ID)
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Next handles GET /sessions/next.
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgNoToken)
		return
	}

	session, err := h.Sessions.RandomNext(r.Context(), claims.ID)
	if err != nil {
		respondError(w, r, h.Log, err, "No sessions found for this user")
		return
	}
	writeJSON(w, http.StatusOK, session)
}
