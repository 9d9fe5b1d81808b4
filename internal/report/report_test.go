package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"network-quality/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		RunID:             "run-1",
		NetworkName:       models.Ok("Home WiFi"),
		DownloadMbps:      models.Ok(94.3),
		UploadMbps:        models.Ok(18.7),
		LatencyMs:         models.Ok(12.5),
		SpeedTestServer:   "Example ISP (Helsinki)",
		JitterMs:          models.Ok(4.0),
		JitterSamples:     5,
		PacketLossPercent: models.Ok(0.0),
		CapturedAt:        time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Duration:          21 * time.Second,
	}
}

func allFailed() models.Snapshot {
	s := sampleSnapshot()
	s.NetworkName = models.Fail[string]("tool unavailable")
	s.DownloadMbps = models.Fail[float64]("timeout after 1m0s")
	s.UploadMbps = models.Fail[float64]("timeout after 1m0s")
	s.LatencyMs = models.Fail[float64]("timeout after 1m0s")
	s.JitterMs = models.Fail[float64]("timeout after 11s")
	s.PacketLossPercent = models.Fail[float64]("tool unavailable")
	return s
}

func TestSnapshotBars(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *models.Snapshot)
		want   []string
	}{
		{
			name:   "all values",
			mutate: func(s *models.Snapshot) {},
			want:   []string{"Download (Mbps)", "Upload (Mbps)", "Latency (ms)", "Jitter (ms)", "Packet Loss (%)"},
		},
		{
			name: "failed throughput left out",
			mutate: func(s *models.Snapshot) {
				s.DownloadMbps = models.Fail[float64]("x")
				s.UploadMbps = models.Fail[float64]("x")
				s.LatencyMs = models.Fail[float64]("x")
			},
			want: []string{"Jitter (ms)", "Packet Loss (%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSnapshot()
			tt.mutate(&s)
			bars := snapshotBars(s)
			if len(bars) != len(tt.want) {
				t.Fatalf("got %d bars, want %d", len(bars), len(tt.want))
			}
			for i, b := range bars {
				if b.Label != tt.want[i] {
					t.Errorf("bar %d label = %q, want %q", i, b.Label, tt.want[i])
				}
			}
		})
	}
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("RenderChart() output is not a PNG")
	}
}

func TestRenderChartAllZero(t *testing.T) {
	s := allFailed()
	s.PacketLossPercent = models.Ok(0.0)

	var buf bytes.Buffer
	if err := RenderChart(&buf, s); err != nil {
		t.Fatalf("RenderChart() with a single zero value error = %v", err)
	}
}

func TestRenderChartNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, allFailed()); !errors.Is(err, ErrNoData) {
		t.Errorf("RenderChart() error = %v, want ErrNoData", err)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Network: Home WiFi",
		"Download: 94.30 Mbps",
		"Upload: 18.70 Mbps",
		"Latency: 12.50 ms",
		"Server: Example ISP (Helsinki)",
		"Jitter: 4.00 ms (5 samples)",
		"Packet Loss: 0.00%",
		"All probes succeeded.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() output missing %q\n%s", want, out)
		}
	}
}

func TestWriteTextFailures(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, allFailed()); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Network: Error: tool unavailable",
		"Packet Loss: Error: tool unavailable",
		"Jitter: Error: timeout after 11s\n",
		"Failed measurements: network_name, download_mbps",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() output missing %q\n%s", want, out)
		}
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, models.Snapshot{}); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No measurements yet.") {
		t.Errorf("unexpected output for empty snapshot: %s", buf.String())
	}
}

func TestGenerateReport(t *testing.T) {
	g := NewGenerator(nil)
	dir, err := g.GenerateReport(t.TempDir(), sampleSnapshot())
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	if base := filepath.Base(dir); base != "network_report_2024-05-01_12-30-00_Home_WiFi" {
		t.Errorf("report dir = %q", base)
	}
	chart, err := os.ReadFile(filepath.Join(dir, "chart.png"))
	if err != nil || !bytes.HasPrefix(chart, pngMagic) {
		t.Errorf("chart.png missing or invalid: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "summary.txt")); err != nil {
		t.Errorf("summary.txt missing: %v", err)
	}
}

func TestGenerateReportWithoutChart(t *testing.T) {
	dir, err := NewGenerator(nil).GenerateReport(t.TempDir(), allFailed())
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "chart.png")); !os.IsNotExist(err) {
		t.Errorf("chart.png should not exist when every measurement failed, stat err = %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"8.8.8.8", "8_8_8_8"},
		{"Home WiFi", "Home_WiFi"},
		{"a/b:c", "a_b_c"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
