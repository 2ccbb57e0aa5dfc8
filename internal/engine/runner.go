/*
PURPOSE:
  Snapshots the benchmark server's stats into a timestamped result file
  (results/benchmark_YYYYMMDD_HHMMSS.json) that the plot command picks up.

ERROR HANDLING:
  - Returns the first error; nothing is written when /stats is invalid.
  - A failed reset after a successful snapshot is returned, the file stays.

USAGE:
  path, err := engine.Collect(ctx, cfg)
*/

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/bench-plot/internal/config"
	"github.com/daryltucker/bench-plot/internal/output"
	"github.com/daryltucker/bench-plot/internal/results"
)

// Collect fetches the current stats and writes them into the results directory.
func Collect(ctx context.Context, cfg *config.Config) (string, error) {
	return New(cfg).Collect(ctx)
}

// Collect fetches the current stats and writes them into the results directory.
// It returns the path of the written file.
func (e *Engine) Collect(ctx context.Context) (string, error) {
	rec, raw, err := e.FetchStats(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.Config.ResultsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory %s: %w", e.Config.ResultsDir, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format stats: %w", err)
	}
	pretty.WriteByte('\n')

	path := filepath.Join(e.Config.ResultsDir, results.FileName(e.now()))
	if err := os.WriteFile(path, pretty.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	output.Logger.Info("Collected stats",
		"file", path,
		"sync_requests", rec.Sync.TotalRequests,
		"async_requests", rec.Async.TotalRequests,
		"async_more_requests", rec.Comparison.AsyncMoreRequestsPercent.String(),
	)

	if e.Config.ResetAfter {
		if err := e.Reset(ctx); err != nil {
			return path, fmt.Errorf("stats saved to %s but reset failed: %w", path, err)
		}
		output.Logger.Info("Reset server stats", "url", e.Config.StatsURL)
	}
	return path, nil
}
