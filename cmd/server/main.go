// Package main starts the mock API server: it loads configuration, sets up
// logging and metrics, binds the JSON file collections and serves the HTTP
// API over HTTP or, when a certificate is configured, HTTPS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/config"
	"github.com/helppsico/mockapi/internal/logger"
	"github.com/helppsico/mockapi/internal/metrics"
	"github.com/helppsico/mockapi/internal/middleware"
	"github.com/helppsico/mockapi/internal/repository"
	"github.com/helppsico/mockapi/internal/server/handler/http"
	"github.com/helppsico/mockapi/internal/service"
	"github.com/helppsico/mockapi/internal/store"
	"github.com/helppsico/mockapi/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	// Metrics registry with the Go runtime and process collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// Bind the collection files.
	fileStore := store.NewFileStore(options.DataDir, zapLogger, collector)
	warnMissingCollections(fileStore, zapLogger)
	repos := repository.New(fileStore)

	tokens, err := token.New([]byte(options.JWTSecret), token.WithTTL(options.TokenTTL.Duration))
	if err != nil {
		zapLogger.Fatal("cannot init token service", zap.Error(err))
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(repos.Users, tokens)
	documentService := service.NewDocumentService(repos.Documents)
	sessionService := service.NewSessionService(repos.Sessions, nil)
	reviewService := service.NewReviewService(repos.Reviews)
	dashboardService := service.NewDashboardService(repos.Documents, repos.Sessions, time.Now)
	notificationService := service.NewNotificationService(repos.Notifications)

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Auth:      &http.AuthHandler{Auth: authService, Log: zapLogger},
		Documents: &http.DocumentHandler{Documents: documentService, Log: zapLogger},
		Sessions:  &http.SessionHandler{Sessions: sessionService, Log: zapLogger},
		Reviews:   &http.ReviewHandler{Reviews: reviewService, Log: zapLogger},
		Feed: &http.FeedHandler{
			DashboardService:    dashboardService,
			NotificationService: notificationService,
			Log:                 zapLogger,
		},
	}, http.RouterConfig{
		Verifier:       tokens,
		LoginLimiter:   middleware.NewRateLimiter(options.LoginRatePerMinute, zapLogger),
		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),
		CORSOrigin:     options.CORSOrigin,
		Logger:         zapLogger,
	})

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if options.TLSEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting server",
			zap.String("addr", options.Addr),
			zap.String("data_dir", options.DataDir),
			zap.Bool("tls", options.TLSEnabled()),
		)
		if options.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}
}

// warnMissingCollections logs collections whose file is absent. Requests for
// them fail with 500 until the file is created, see cmd/seed.
func warnMissingCollections(s *store.FileStore, log *zap.Logger) {
	for _, name := range repository.All {
		ok, err := s.Exists(name)
		if err != nil {
			log.Warn("cannot stat collection", zap.String("collection", name), zap.Error(err))
			continue
		}
		if !ok {
			log.Warn("collection file missing", zap.String("collection", name), zap.String("path", s.Path(name)))
		}
	}
}
