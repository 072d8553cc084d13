// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihandler "github.com/stockscope/stockscope/internal/api/handler/api"
	"github.com/stockscope/stockscope/internal/api/job"
	"github.com/stockscope/stockscope/internal/api/middleware"
	"github.com/stockscope/stockscope/internal/api/response"
	"github.com/stockscope/stockscope/internal/metrics"
	"github.com/stockscope/stockscope/internal/storage/archive"
)

// Server represents the stock analysis HTTP API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	MetricsPath string
}

// Dependencies carries everything the API serves. Analyst and Metrics
// are optional.
type Dependencies struct {
	Source  apihandler.ReportSource
	Jobs    *job.Store
	Archive archive.Storage
	Analyst apihandler.Commentator
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Source == nil {
		return nil, fmt.Errorf("server needs an analysis source")
	}
	if deps.Jobs == nil || deps.Archive == nil {
		return nil, fmt.Errorf("server needs a job store and a report archive")
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}
	s.setupRoutes(cfg, deps)

	// CORS outermost so preflights never reach the mux.
	var handler http.Handler = mux
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = middleware.Logging(logger)(handler)
	handler = middleware.CORS(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	stocks := apihandler.NewStockHandler(deps.Source, deps.Metrics)
	reports := apihandler.NewReportHandler(deps.Source, deps.Jobs, deps.Archive, deps.Analyst, deps.Metrics, s.logger)

	s.mux.HandleFunc("GET /{$}", stocks.Welcome)
	s.mux.HandleFunc("GET /api/stock/{ticker}", stocks.Get)

	s.mux.HandleFunc("POST /api/stock/{ticker}/report", reports.Create)
	s.mux.HandleFunc("GET /api/stock/{ticker}/reports", reports.Archived)
	s.mux.HandleFunc("GET /api/reports", reports.Jobs)
	s.mux.HandleFunc("GET /api/reports/{id}", reports.Status)
	s.mux.HandleFunc("GET /api/reports/{id}/download", reports.Download)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.mux.HandleFunc("/", s.handleNotFound)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	response.ErrorMessage(w, http.StatusNotFound, "Not Found")
}
