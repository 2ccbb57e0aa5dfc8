/*
PURPOSE:
  Renders sync vs async comparison bar charts from the benchmark time series.

REQUIREMENTS:
  User-specified:
  - One bar pair per benchmark timestamp.
  - "Total Requests" and "Average Request Time" charts.
  - x-axis "Benchmark Timestamp", tick labels rotated 45 degrees, 12x6 figure.

  Implementation-discovered:
  - plotter.NewBarChart rejects empty values and Plot.NominalX panics on no
    names, so an empty table is drawn as a bare frame (axes, title, legend).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot)
  - Consumes: internal/model.Table
  - Dependencies: gonum.org/v1/plot

ERROR HANDLING:
  - Returns plotter/encoding errors; never panics on empty input.

USAGE:
  err := chart.Save(table, chart.TotalRequests(), "results/plot_total_requests.png")
*/

package chart

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/bench-plot/internal/model"
)

const (
	// DefaultWidth and DefaultHeight are the figure size.
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 6 * vg.Inch

	// XLabel is shared by every chart.
	XLabel = "Benchmark Timestamp"
)

var (
	maxBarWidth = vg.Points(24)
	barGap      = vg.Points(2)
)

// Series is one bar set of a chart.
type Series struct {
	Label string
	Value func(model.TimeSeriesRow) float64
}

// Spec describes a grouped bar chart.
type Spec struct {
	Title  string
	YLabel string
	XLabel string
	Series []Series
	Width  vg.Length
	Height vg.Length
}

// TotalRequests charts the sync and async request counts.
func TotalRequests() Spec {
	return Spec{
		Title:  "Total Requests: Sync vs Async",
		YLabel: "Requests",
		XLabel: XLabel,
		Series: []Series{
			{Label: "sync_requests", Value: func(r model.TimeSeriesRow) float64 { return float64(r.SyncRequests) }},
			{Label: "async_requests", Value: func(r model.TimeSeriesRow) float64 { return float64(r.AsyncRequests) }},
		},
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// AverageTime charts the sync and async average request latency.
func AverageTime() Spec {
	return Spec{
		Title:  "Average Request Time (ms): Sync vs Async",
		YLabel: "Milliseconds",
		XLabel: XLabel,
		Series: []Series{
			{Label: "sync_avg_ms", Value: func(r model.TimeSeriesRow) float64 { return r.SyncAvgMs }},
			{Label: "async_avg_ms", Value: func(r model.TimeSeriesRow) float64 { return r.AsyncAvgMs }},
		},
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

func (s Spec) size() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// barWidth shrinks bars so every group fits the plotting area.
func (s Spec) barWidth(groups int) vg.Length {
	w, _ := s.size()
	if groups == 0 || len(s.Series) == 0 {
		return maxBarWidth
	}
	usable := (w - 1*vg.Inch) * 0.8
	bw := usable/vg.Length(groups*len(s.Series)) - barGap
	if bw > maxBarWidth {
		return maxBarWidth
	}
	if bw < vg.Points(1) {
		return vg.Points(1)
	}
	return bw
}

// Build lays out the chart for t.
func Build(t model.Table, s Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.Y.Label.Text = s.YLabel
	p.X.Label.Text = s.XLabel
	p.Y.Min = 0
	p.Legend.Top = true

	n := t.Len()
	bw := s.barWidth(n)
	// Center-to-center width of a group.
	groupWidth := (bw + barGap) * vg.Length(len(s.Series)-1)

	for i, series := range s.Series {
		if n == 0 {
			// Legend entry only.
			thumb, err := plotter.NewBarChart(plotter.Values{0}, bw)
			if err != nil {
				return nil, err
			}
			thumb.Color = plotutil.Color(i)
			p.Legend.Add(series.Label, thumb)
			continue
		}

		bars, err := plotter.NewBarChart(plotter.Values(t.Column(series.Value)), bw)
		if err != nil {
			return nil, fmt.Errorf("failed to build %q bars: %w", series.Label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = (bw+barGap)*vg.Length(i) - groupWidth/2

		p.Add(bars)
		p.Legend.Add(series.Label, bars)
	}

	if n == 0 {
		p.X.Min, p.X.Max = -0.5, 0.5
		p.Y.Max = 1
		p.X.Tick.Marker = plot.ConstantTicks([]plot.Tick{})
		return p, nil
	}

	p.NominalX(t.Labels()...)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// Save renders t to file. The image format follows the file extension; an
// existing file is overwritten.
func Save(t model.Table, s Spec, file string) error {
	p, err := Build(t, s)
	if err != nil {
		return err
	}
	w, h := s.size()
	if err := p.Save(w, h, file); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", file, err)
	}
	return nil
}

// WriteTo renders t to w in the given format ("png", "svg", "pdf", ...).
func WriteTo(w io.Writer, t model.Table, s Spec, format string) error {
	p, err := Build(t, s)
	if err != nil {
		return err
	}
	width, height := s.size()
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// WithSize returns a copy of s sized in inches.
func (s Spec) WithSize(widthIn, heightIn float64) Spec {
	s.Width = vg.Length(widthIn) * vg.Inch
	s.Height = vg.Length(heightIn) * vg.Inch
	return s
}
