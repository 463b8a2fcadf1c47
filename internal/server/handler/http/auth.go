package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/middleware"
	"github.com/helppsico/mockapi/internal/models"
	"github.com/helppsico/mockapi/internal/service"
)

// AuthService defines the credential check used by AuthHandler.
type AuthService interface {
	// Login returns a signed token and profile for matching credentials.
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// AuthHandler handles login and the diagnostic protected route.
type AuthHandler struct {
	Auth AuthService
	Log  *zap.Logger
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful POST /login.
type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    models.Profile `json:"user"`
}

// ProtectedResponse is returned by GET /protected.
type ProtectedResponse struct {
	Message string         `json:"message"`
	User    *models.Claims `json:"user"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrBadRequest) {
		middleware.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if err != nil {
		respondError(w, r, h.Log, err, "")
		return
	}

	if h.Log != nil {
		h.Log.Info("user logged in", zap.String("user_id", res.User.ID))
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "User validated successfully",
		Token:   res.Token,
		User:    res.User,
	})
}

// Protected handles GET /protected by echoing the caller's claims.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProtectedResponse{
		Message: "This is a protected route",
		User:    middleware.ClaimsFromContext(r.Context()),
	})
}
