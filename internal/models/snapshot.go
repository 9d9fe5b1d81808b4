package models

import "time"

// Throughput is the output of one speed test session
type Throughput struct {
	DownloadMbps float64 `json:"download_mbps"`
	UploadMbps   float64 `json:"upload_mbps"`
	LatencyMs    float64 `json:"latency_ms"`
	Server       string  `json:"server"`
}

// Jitter is the spread of echo round-trip times
type Jitter struct {
	Ms      float64 `json:"ms"`
	Samples int     `json:"samples"` // successful echo replies behind Ms
}

// Snapshot is one complete set of measurement results.
// It is built once per run and never modified afterwards.
type Snapshot struct {
	RunID             string          `json:"run_id"`
	NetworkName       Result[string]  `json:"network_name"`
	DownloadMbps      Result[float64] `json:"download_mbps"`
	UploadMbps        Result[float64] `json:"upload_mbps"`
	LatencyMs         Result[float64] `json:"latency_ms"`
	SpeedTestServer   string          `json:"speedtest_server,omitempty"`
	JitterMs          Result[float64] `json:"jitter_ms"`
	JitterSamples     int             `json:"jitter_samples"`
	PacketLossPercent Result[float64] `json:"packet_loss_percent"`
	CapturedAt        time.Time       `json:"captured_at"`
	Duration          time.Duration   `json:"duration_ns"`
}

// IsZero reports whether s is the empty snapshot served before the first run
func (s Snapshot) IsZero() bool {
	return s.CapturedAt.IsZero()
}

// Failures returns the names of the fields that hold a failure placeholder
func (s Snapshot) Failures() []string {
	var failed []string
	if s.NetworkName.Failed {
		failed = append(failed, "network_name")
	}
	if s.DownloadMbps.Failed {
		failed = append(failed, "download_mbps")
	}
	if s.UploadMbps.Failed {
		failed = append(failed, "upload_mbps")
	}
	if s.LatencyMs.Failed {
		failed = append(failed, "latency_ms")
	}
	if s.JitterMs.Failed {
		failed = append(failed, "jitter_ms")
	}
	if s.PacketLossPercent.Failed {
		failed = append(failed, "packet_loss_percent")
	}
	return failed
}
