package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"network-quality/internal/models"
	"network-quality/internal/report"
)

var templateFuncs = template.FuncMap{
	"render": func(r models.Result[float64], format string) string {
		return r.Render(format)
	},
}

// handleDashboard refreshes the measurements and renders the HTML dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot := s.refresher.Refresh(r.Context())

	var buf bytes.Buffer
	if err := s.dashboard.Execute(&buf, snapshot); err != nil {
		s.logger.Error("Failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleTest handles /api/test requests: runs the probes and returns the result
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.refresher.Refresh(r.Context()))
}

// handleSnapshot handles /api/snapshot requests without running the probes
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.refresher.Current())
}

// handleChart renders the current snapshot as a PNG bar chart
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	snapshot := s.refresher.Current()
	if snapshot.IsZero() {
		http.Error(w, "no measurements yet", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := report.RenderChart(&buf, snapshot); err != nil {
		if errors.Is(err, report.ErrNoData) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("Failed to render chart", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
