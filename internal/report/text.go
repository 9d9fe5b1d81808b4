package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"network-quality/internal/models"
)

// WriteText writes a plain-text summary of the snapshot
func WriteText(w io.Writer, s models.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Network Quality Report\n")
	if s.IsZero() {
		fmt.Fprintln(&b, "No measurements yet.")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Captured: %s\n", s.CapturedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run: %s (%s)\n\n", s.RunID, s.Duration.Round(time.Millisecond))
	fmt.Fprintln(&b, strings.Repeat("=", 60))

	fmt.Fprintf(&b, "Network: %s\n", s.NetworkName)
	fmt.Fprintf(&b, "  Download: %s\n", s.DownloadMbps.Render("%.2f Mbps"))
	fmt.Fprintf(&b, "  Upload: %s\n", s.UploadMbps.Render("%.2f Mbps"))
	fmt.Fprintf(&b, "  Latency: %s\n", s.LatencyMs.Render("%.2f ms"))
	if s.SpeedTestServer != "" {
		fmt.Fprintf(&b, "  Server: %s\n", s.SpeedTestServer)
	}
	fmt.Fprintf(&b, "  Jitter: %s", s.JitterMs.Render("%.2f ms"))
	if !s.JitterMs.Failed {
		fmt.Fprintf(&b, " (%d samples)", s.JitterSamples)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "  Packet Loss: %s\n", s.PacketLossPercent.Render("%.2f%%"))

	fmt.Fprintln(&b, strings.Repeat("=", 60))

	failures := s.Failures()
	if len(failures) == 0 {
		fmt.Fprintln(&b, "All probes succeeded.")
	} else {
		fmt.Fprintf(&b, "Failed measurements: %s\n", strings.Join(failures, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
