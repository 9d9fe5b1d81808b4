// Package metrics exports the latest snapshot as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"network-quality/internal/models"
)

// Probe label values
const (
	ProbeIdentity   = "identity"
	ProbeThroughput = "throughput"
	ProbeJitter     = "jitter"
	ProbePacketLoss = "packet_loss"
)

// Metrics holds the exported collectors
type Metrics struct {
	downloadMbps  prometheus.Gauge
	uploadMbps    prometheus.Gauge
	latencyMs     prometheus.Gauge
	jitterMs      prometheus.Gauge
	jitterSamples prometheus.Gauge
	packetLoss    prometheus.Gauge
	probeUp       *prometheus.GaugeVec
	probeFailures *prometheus.CounterVec
	runs          prometheus.Counter
	runDuration   prometheus.Histogram
	lastRunTime   prometheus.Gauge
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		downloadMbps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_download_mbps",
			Help: "Download throughput of the last successful speed test in Mbps",
		}),
		uploadMbps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_upload_mbps",
			Help: "Upload throughput of the last successful speed test in Mbps",
		}),
		latencyMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_latency_ms",
			Help: "Speed test server latency in milliseconds",
		}),
		jitterMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_jitter_ms",
			Help: "Spread between the fastest and slowest echo reply in milliseconds",
		}),
		jitterSamples: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_jitter_samples",
			Help: "Echo replies behind the last jitter value",
		}),
		packetLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_packet_loss_percent",
			Help: "Packet loss of the last echo batch in percent",
		}),
		probeUp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netquality_probe_up",
				Help: "Whether the probe succeeded in the last run (1 = ok, 0 = failed)",
			},
			[]string{"probe"},
		),
		probeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netquality_probe_failures_total",
				Help: "Total number of failed probe executions",
			},
			[]string{"probe"},
		),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netquality_runs_total",
			Help: "Total number of completed measurement runs",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "netquality_run_duration_seconds",
			Help:    "Wall time of a measurement run",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90},
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netquality_last_run_timestamp",
			Help: "Unix time the last run finished",
		}),
	}

	reg.MustRegister(
		m.downloadMbps,
		m.uploadMbps,
		m.latencyMs,
		m.jitterMs,
		m.jitterSamples,
		m.packetLoss,
		m.probeUp,
		m.probeFailures,
		m.runs,
		m.runDuration,
		m.lastRunTime,
	)

	// Export every series from the start, before the first run
	for _, probe := range []string{ProbeIdentity, ProbeThroughput, ProbeJitter, ProbePacketLoss} {
		m.probeUp.WithLabelValues(probe)
		m.probeFailures.WithLabelValues(probe)
	}

	return m
}

// Observe records a finished run. Value gauges keep their previous value
// when the probe behind them failed; probe_up reports the failure.
func (m *Metrics) Observe(s models.Snapshot) {
	m.runs.Inc()
	m.runDuration.Observe(s.Duration.Seconds())
	m.lastRunTime.Set(float64(s.CapturedAt.Unix()))

	m.setUp(ProbeIdentity, !s.NetworkName.Failed)

	throughputOK := !s.DownloadMbps.Failed && !s.UploadMbps.Failed && !s.LatencyMs.Failed
	m.setUp(ProbeThroughput, throughputOK)
	if throughputOK {
		m.downloadMbps.Set(s.DownloadMbps.Value)
		m.uploadMbps.Set(s.UploadMbps.Value)
		m.latencyMs.Set(s.LatencyMs.Value)
	}

	m.setUp(ProbeJitter, !s.JitterMs.Failed)
	if !s.JitterMs.Failed {
		m.jitterMs.Set(s.JitterMs.Value)
		m.jitterSamples.Set(float64(s.JitterSamples))
	}

	m.setUp(ProbePacketLoss, !s.PacketLossPercent.Failed)
	if !s.PacketLossPercent.Failed {
		m.packetLoss.Set(s.PacketLossPercent.Value)
	}
}

func (m *Metrics) setUp(probe string, ok bool) {
	if ok {
		m.probeUp.WithLabelValues(probe).Set(1)
		return
	}
	m.probeUp.WithLabelValues(probe).Set(0)
	m.probeFailures.WithLabelValues(probe).Inc()
}
