// Package api provides the HTTP API server and handlers for the SnapSense dashboard.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
	"github.com/snapsense/snapsense-server/internal/service"
	"github.com/snapsense/snapsense-server/internal/sse"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Services groups the business services used by the API server.
type Services struct {
	Profile   *service.ProfileService
	Dashboard *service.DashboardService
	Stats     *service.StatsService
	Report    *service.ReportService
}

// Pinger is a storage backend that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	CORSOrigins []string
	// Health checks keyed by component name.
	Checks map[string]Pinger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services   *Services
	sseManager *sse.Manager
	sseHandler *sse.Handler
	checks     map[string]Pinger
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, sseManager *sse.Manager, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		services:   services,
		sseManager: sseManager,
		checks:     opts.Checks,
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.setupMiddleware(opts.CORSOrigins)

	humaConfig := huma.DefaultConfig("SnapSense Parent Dashboard API", Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	if sseManager != nil {
		s.sseHandler = sse.NewHandler(sseManager, services.Profile.Exists, logger)
		s.router.Get("/api/v1/live", s.sseHandler.ServeHTTP)
	}

	s.registerHealthRoutes()
	s.registerProfileRoutes()
	s.registerSelectionRoutes()
	s.registerDashboardRoutes()
	s.registerStatsRoutes()
	s.registerReportRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	if len(origins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Last-Event-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// requestLogger logs every request at debug level, and failures at warn.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelDebug
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		s.logger.Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// fail converts a service error into an APIError. Internal failures are
// logged; the others are expected outcomes.
func (s *Server) fail(ctx context.Context, op string, err error) error {
	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = domainerrors.Wrap(err, domainerrors.CodeInternal, "internal error")
	}
	if domainErr.Code == domainerrors.CodeInternal || domainErr.Code == domainerrors.CodeUnavailable {
		s.logger.ErrorContext(ctx, op+" failed", "error", err)
	}
	return fromDomain(domainErr)
}

// requireProfile rejects ids with no stored profile.
func (s *Server) requireProfile(profileID string) error {
	if !s.services.Profile.Exists(profileID) {
		return domainerrors.NotFoundf("profile %q not found", profileID)
	}
	return nil
}
