/*
PURPOSE:
  Builds the benchmark time series from a results directory.
  Discover -> Load -> Normalize -> Append, strictly in listing order.

ERROR HANDLING:
  - The first error aborts aggregation; no partial table is returned.
  - Errors wrap ErrResultsDirMissing, ErrTimestamp or ErrSchema.

USAGE:
  table, err := results.Aggregate("results")
*/

package results

import (
	"fmt"

	"github.com/daryltucker/bench-plot/internal/model"
	"github.com/daryltucker/bench-plot/internal/output"
)

// Normalize projects a parsed record onto a numeric time series row.
func Normalize(file model.ResultFile, rec model.BenchmarkRecord) model.TimeSeriesRow {
	return model.TimeSeriesRow{
		Timestamp:            file.Timestamp,
		SyncRequests:         rec.Sync.TotalRequests,
		AsyncRequests:        rec.Async.TotalRequests,
		SyncAvgMs:            rec.Sync.AverageTimeMs,
		AsyncAvgMs:           rec.Async.AverageTimeMs,
		AsyncMoreRequestsPct: rec.Comparison.AsyncMoreRequestsPercent.Float(),
		AsyncFasterTimePct:   rec.Comparison.AverageTimeDifferencePercent.Float(),
		AsyncSlowdownRatio:   rec.Comparison.AsyncSlowdownRatio.Float(),
	}
}

// Aggregate reads every result file in dir and returns the ordered table.
func Aggregate(dir string) (model.Table, error) {
	files, err := Discover(dir)
	if err != nil {
		return model.Table{}, err
	}

	table := model.Table{Rows: make([]model.TimeSeriesRow, 0, len(files))}
	for _, file := range files {
		rec, err := Load(file.Path)
		if err != nil {
			return model.Table{}, err
		}
		if err := table.Append(Normalize(file, rec)); err != nil {
			return model.Table{}, fmt.Errorf("failed to add %s: %w", file.Path, err)
		}
		output.Logger.Debug("Loaded result", "file", file.Path, "timestamp", file.Timestamp.Format(model.LabelLayout))
	}

	output.Logger.Info("Aggregated results", "dir", dir, "rows", table.Len())
	return table, nil
}
