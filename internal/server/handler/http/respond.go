package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/middleware"
	"github.com/helppsico/mockapi/internal/service"
	"github.com/helppsico/mockapi/internal/store"
)

const msgInvalidBody = "Invalid request body"

func writeJSON(w http.ResponseWriter, status int, v any) {
	middleware.WriteJSON(w, status, v)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondError maps a service or store error to its HTTP status and a
// {"message": ...} body. Server-side failures are logged; their details are
// not sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, notFoundMsg string) {
	var (
		readErr  *store.ReadError
		writeErr *store.WriteError
		valErr   *service.ValidationError
	)

	switch {
	case errors.As(err, &readErr):
		logServerError(log, r, err)
		middleware.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading %s database", readErr.Collection))
	case errors.As(err, &writeErr):
		logServerError(log, r, err)
		middleware.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error writing to %s database", writeErr.Collection))
	case errors.Is(err, service.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &valErr):
		middleware.WriteError(w, http.StatusBadRequest, valErr.Error())
	case errors.Is(err, service.ErrUnauthorized):
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		logServerError(log, r, err)
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func logServerError(log *zap.Logger, r *http.Request, err error) {
	if log == nil {
		return
	}
	log.Error("request failed",
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}
