package models

import (
	"reflect"
	"testing"
	"time"
)

func TestResultString(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ok float", Ok(12.5).String(), "12.5"},
		{"ok string", Ok("home-wifi").String(), "home-wifi"},
		{"failed", Fail[float64]("timeout").String(), "Error: timeout"},
		{"failed without reason", Fail[string]("").String(), "Error: unknown error"},
		{"format ok", Ok(3.14159).Render("%.2f ms"), "3.14 ms"},
		{"format failed", Fail[float64]("ping: not found").Render("%.2f ms"), "Error: ping: not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestZeroLossIsNotFailure(t *testing.T) {
	zero := Ok(0.0)
	failed := Fail[float64]("parse failure")

	if zero.Failed {
		t.Error("Ok(0) must not be marked failed")
	}
	if !failed.Failed || failed.Value != 0 {
		t.Errorf("Fail() = %+v, want failed with zero value", failed)
	}
	if zero.String() == failed.String() {
		t.Error("0% loss and a failed loss probe must render differently")
	}
}

func TestSnapshotIsZero(t *testing.T) {
	if !(Snapshot{}).IsZero() {
		t.Error("empty snapshot should be zero")
	}
	if (Snapshot{CapturedAt: time.Now()}).IsZero() {
		t.Error("captured snapshot should not be zero")
	}
}

func TestSnapshotFailures(t *testing.T) {
	s := Snapshot{
		NetworkName:       Ok("lab"),
		DownloadMbps:      Fail[float64]("transfer failed"),
		UploadMbps:        Fail[float64]("transfer failed"),
		LatencyMs:         Fail[float64]("transfer failed"),
		JitterMs:          Ok(0.0),
		PacketLossPercent: Fail[float64]("timeout"),
	}

	want := []string{"download_mbps", "upload_mbps", "latency_ms", "packet_loss_percent"}
	if got := s.Failures(); !reflect.DeepEqual(got, want) {
		t.Errorf("Failures() = %v, want %v", got, want)
	}
}
