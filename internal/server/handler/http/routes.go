// Package http provides HTTP routing and handlers for the mock API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/metrics"
	"github.com/helppsico/mockapi/internal/middleware"
)

// Handlers groups the resource handlers mounted by NewRouter.
type Handlers struct {
	Auth      *AuthHandler
	Documents *DocumentHandler
	Sessions  *SessionHandler
	Reviews   *ReviewHandler
	Feed      *FeedHandler
}

// RouterConfig carries the cross-cutting dependencies of the router.
type RouterConfig struct {
	// Verifier validates bearer tokens on protected routes.
	Verifier middleware.TokenVerifier
	// LoginLimiter throttles POST /login. Nil disables limiting.
	LoginLimiter *middleware.RateLimiter
	// Metrics records per-route request counts and latency. Nil disables it.
	Metrics metrics.Recorder
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	// CORSOrigin is the allowed origin; empty means "*".
	CORSOrigin string
	Logger     *zap.Logger
}

// NewRouter constructs the HTTP handler that serves the mock API.
//
// Routes:
//
//	GET    /documents                      → Documents.List
//	PUT    /documents/{id}/toggle-favorite → Documents.ToggleFavorite
//	DELETE /documents/{id}                 → Documents.Delete
//	GET    /sessions                       → Sessions.List (bearer)
//	GET    /sessions/next                  → Sessions.Next (bearer)
//	POST   /login                          → Auth.Login (rate limited)
//	GET    /protected                      → Auth.Protected (bearer)
//	GET    /reviews/{subjectId}            → Reviews.ListBySubject
//	POST   /reviews                        → Reviews.Create
//	DELETE /reviews/{id}                   → Reviews.Delete
//	GET    /notifications                  → Feed.Notifications
//	GET    /dashboard                      → Feed.Dashboard
//	GET    /health
//	GET    /metrics
//
// Middleware chain (applied in order):
//  1. RealIP
//  2. WithRequestLogging(logger)
//  3. WithMetrics
//  4. Recoverer, so panics are logged and counted as 500
//  5. CORS
//  6. AllowContentType("application/json") for requests with a body
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	limiter := cfg.LoginLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(0, logger)
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithMetrics(rec))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.NewCORSMiddleware(cfg.CORSOrigin))
	// Bodiless requests pass through; bodies must be JSON.
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.Documents.List)
		r.Put("/{id}/toggle-favorite", h.Documents.ToggleFavorite)
		r.Delete("/{id}", h.Documents.Delete)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.Reviews.Create)
		// Both routes share the {id} segment; for GET it names the psychologist.
		r.Get("/{id}", h.Reviews.ListBySubject)
		r.Delete("/{id}", h.Reviews.Delete)
	})

	r.Get("/notifications", h.Feed.Notifications)
	r.Get("/dashboard", h.Feed.Dashboard)

	r.With(limiter.Middleware).Post("/login", h.Auth.Login)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(cfg.Verifier, logger))
		r.Get("/sessions", h.Sessions.List)
		r.Get("/sessions/next", h.Sessions.Next)
		r.Get("/protected", h.Auth.Protected)
	})

	return r
}
