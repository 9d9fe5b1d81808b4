package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"network-quality/internal/models"
)

// Generator writes snapshot reports to disk
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger.With("component", "report")}
}

// GenerateReport writes summary.txt and chart.png for the snapshot into a new
// directory under outputDir and returns that directory
func (g *Generator) GenerateReport(outputDir string, s models.Snapshot) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("network_report_%s", s.CapturedAt.Format("2006-01-02_15-04-05"))
	if !s.NetworkName.Failed && s.NetworkName.Value != "" {
		name += "_" + sanitizeFilename(s.NetworkName.Value)
	}
	reportDir := filepath.Join(outputDir, name)
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.writeFile(filepath.Join(reportDir, "summary.txt"), func(f *os.File) error {
		return WriteText(f, s)
	}); err != nil {
		return "", fmt.Errorf("failed to write text report: %w", err)
	}

	chartPath := filepath.Join(reportDir, "chart.png")
	err := g.writeFile(chartPath, func(f *os.File) error {
		return RenderChart(f, s)
	})
	switch {
	case errors.Is(err, ErrNoData):
		os.Remove(chartPath)
		g.logger.Warn("Skipping chart, every measurement failed", "run_id", s.RunID)
	case err != nil:
		g.logger.Error("Failed to generate chart", "error", err)
	}

	g.logger.Info("Report generated", "dir", reportDir)
	return reportDir, nil
}

func (g *Generator) writeFile(path string, write func(f *os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// reportNameReplacer maps characters that are unsafe in a directory name to underscores
var reportNameReplacer = strings.NewReplacer(".", "_", ":", "_", "/", "_", "\\", "_", " ", "_")

func sanitizeFilename(s string) string {
	return reportNameReplacer.Replace(s)
}
