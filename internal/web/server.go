package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"network-quality/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Refresher runs a measurement on demand and serves the latest snapshot
type Refresher interface {
	models.Refresher
	Current() models.Snapshot
}

// Server handles web requests
type Server struct {
	refresher Refresher
	metrics   http.Handler
	port      int
	logger    *slog.Logger
	dashboard *template.Template
	srv       *http.Server
}

// New creates a new web server. metrics may be nil to disable /metrics.
func New(refresher Refresher, metrics http.Handler, port int, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dashboard, err := template.New("dashboard.html").Funcs(templateFuncs).ParseFS(templateFiles, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	s := &Server{
		refresher: refresher,
		metrics:   metrics,
		port:      port,
		logger:    logger.With("component", "web"),
		dashboard: dashboard,
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("GET /api/test", s.handleTest)
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)

	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	mux.HandleFunc("GET /{$}", s.handleDashboard)

	return mux
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Web server starting", "port", s.port)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the web server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
