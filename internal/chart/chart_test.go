package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/bench-plot/internal/model"
)

func sampleTable(t *testing.T, n int) model.Table {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var table model.Table
	for i := 0; i < n; i++ {
		require.NoError(t, table.Append(model.TimeSeriesRow{
			Timestamp:     base.Add(time.Duration(i) * time.Hour),
			SyncRequests:  int64(100 + i),
			AsyncRequests: int64(120 + i),
			SyncAvgMs:     50,
			AsyncAvgMs:    40,
		}))
	}
	return table
}

func TestBuild_OneBarPairPerRow(t *testing.T) {
	table := sampleTable(t, 3)

	p, err := Build(table, TotalRequests())
	require.NoError(t, err)

	assert.Equal(t, "Total Requests: Sync vs Async", p.Title.Text)
	assert.Equal(t, "Requests", p.Y.Label.Text)
	assert.Equal(t, XLabel, p.X.Label.Text)
	assert.InDelta(t, 0.785, p.X.Tick.Label.Rotation, 0.001)

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	require.Len(t, ticks, 3)
	assert.Equal(t, "2024-01-01 12:00:00", ticks[0].Label)
	assert.Equal(t, "2024-01-01 14:00:00", ticks[2].Label)
	assert.Equal(t, 0.0, p.Y.Min)
	assert.GreaterOrEqual(t, p.Y.Max, 122.0)
}

func TestBuild_EmptyTable(t *testing.T) {
	p, err := Build(model.Table{}, AverageTime())
	require.NoError(t, err)
	assert.Empty(t, p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max))

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, model.Table{}, AverageTime(), "png"))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestWriteTo_PNGSize(t *testing.T) {
	var buf bytes.Buffer
	spec := TotalRequests().WithSize(4, 2)
	require.NoError(t, WriteTo(&buf, sampleTable(t, 2), spec, "png"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Greater(t, bounds.Dx(), bounds.Dy())
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot_avg_time.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, Save(sampleTable(t, 5), AverageTime(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestBarWidthShrinksWithRows(t *testing.T) {
	spec := TotalRequests()
	assert.Equal(t, maxBarWidth, spec.barWidth(1))
	assert.Less(t, spec.barWidth(200), maxBarWidth)
	assert.GreaterOrEqual(t, spec.barWidth(100000), vg.Points(1))
}

func TestWithSize(t *testing.T) {
	spec := AverageTime().WithSize(12, 6)
	assert.Equal(t, DefaultWidth, spec.Width)
	assert.Equal(t, DefaultHeight, spec.Height)
}
