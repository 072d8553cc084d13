package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/stockscope/stockscope/internal/api/middleware"
	"github.com/stockscope/stockscope/internal/client"
	"github.com/stockscope/stockscope/internal/view"
)

// Server hosts the browser frontend.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds viewer server configuration.
type Config struct {
	Host         string
	Port         int
	APIBaseURL   string
	TemplatesDir string
	// LookupTimeout bounds each API call. Zero means no timeout.
	LookupTimeout time.Duration
}

// NewServer creates the viewer server. It owns the API client and the
// lookup session the pages render from.
func NewServer(cfg Config, logger *zap.Logger) (*Server, error) {
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("viewer needs the analysis API base URL")
	}

	fetcher := client.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.LookupTimeout}, logger)
	session := view.NewSession(fetcher)

	handler, err := NewHandler(cfg.TemplatesDir, session)
	if err != nil {
		return nil, fmt.Errorf("creating web handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Home)
	mux.HandleFunc("POST /lookup", handler.Lookup)

	s := &Server{
		logger: logger,
		mux:    mux,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      middleware.Logging(logger)(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting viewer server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down viewer server")
	return s.httpServer.Shutdown(ctx)
}
