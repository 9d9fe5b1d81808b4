package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"network-quality/internal/models"
)

// ErrNoData is returned when a snapshot has no successful value to chart
var ErrNoData = errors.New("no successful measurements to chart")

// snapshotBars returns one bar per successful numeric measurement
func snapshotBars(s models.Snapshot) []chart.Value {
	fields := []struct {
		label  string
		result models.Result[float64]
	}{
		{"Download (Mbps)", s.DownloadMbps},
		{"Upload (Mbps)", s.UploadMbps},
		{"Latency (ms)", s.LatencyMs},
		{"Jitter (ms)", s.JitterMs},
		{"Packet Loss (%)", s.PacketLossPercent},
	}

	var bars []chart.Value
	for i, f := range fields {
		if f.result.Failed {
			continue
		}
		bars = append(bars, chart.Value{
			Label: f.label,
			Value: f.result.Value,
			Style: chart.Style{
				FillColor:   chart.GetDefaultColor(i),
				StrokeColor: chart.GetDefaultColor(i),
			},
		})
	}
	return bars
}

// RenderChart draws the snapshot as a PNG bar chart. Failed measurements are left out.
func RenderChart(w io.Writer, s models.Snapshot) error {
	bars := snapshotBars(s)
	if len(bars) == 0 {
		return ErrNoData
	}

	top := 1.0
	for _, b := range bars {
		top = max(top, b.Value)
	}

	title := "Network Quality"
	if !s.NetworkName.Failed && s.NetworkName.Value != "" {
		title = fmt.Sprintf("Network Quality - %s", s.NetworkName.Value)
	}

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    900,
		Height:   400,
		BarWidth: 60,
		XAxis: chart.Style{
			StrokeColor: drawing.ColorBlack,
			FontSize:    10,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: top * 1.1,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
