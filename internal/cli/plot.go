/*
PURPOSE:
  Defines the 'plot' subcommand (also the root command's default action).
  Aggregates the results directory and renders both comparison charts.

ARCHITECTURE INTEGRATION:
  - Calls: internal/results.Aggregate(), internal/chart.Save()
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Any aggregation or render error aborts the command. Charts written before
    the failure are left in place.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Aggregate -> Render -> Export -> Confirm.
  - stdout carries exactly the two confirmation lines; logs go to stderr.

USAGE:
  bench-plot plot -d ./results --export-csv benchmark_table.csv
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-plot/internal/chart"
	"github.com/daryltucker/bench-plot/internal/config"
	"github.com/daryltucker/bench-plot/internal/output"
	"github.com/daryltucker/bench-plot/internal/results"
)

var (
	resultsDirOverride  string
	exportCSVOverride   string
	exportJSONLOverride string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the total-requests and average-time charts",
	Long: `Reads every benchmark_YYYYMMDD_HHMMSS.json file in the results directory,
builds a time series ordered by run timestamp and renders two grouped bar charts
(sync vs async) next to the inputs.

Any malformed filename or result file aborts the run. An empty results directory
renders empty charts.`,
	Example: `  # Defaults: ./results in, ./results/plot_*.png out
  bench-plot plot

  # Another results directory, plus a CSV of the aggregated table
  bench-plot plot -d ./archive/2024-01 --export-csv benchmark_table.csv`,
	Args: cobra.NoArgs,
	RunE: runPlot,
}

func runPlot(cmd *cobra.Command, args []string) error {
	// 1. Load Config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Overrides
	if resultsDirOverride != "" {
		cfg.ResultsDir = resultsDirOverride
	}
	if exportCSVOverride != "" {
		cfg.ExportCSV = exportCSVOverride
	}
	if exportJSONLOverride != "" {
		cfg.ExportJSONL = exportJSONLOverride
	}

	// 3. Execution
	saved, err := Plot(cfg)
	if err != nil {
		return err
	}
	for _, path := range saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	}
	return nil
}

// Plot aggregates cfg.ResultsDir, renders both charts and runs the configured
// exports. It returns the chart paths in render order.
func Plot(cfg *config.Config) ([]string, error) {
	table, err := results.Aggregate(cfg.ResultsDir)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		output.Logger.Warn("No benchmark results found, rendering empty charts", "dir", cfg.ResultsDir)
	}

	charts := []struct {
		spec chart.Spec
		file string
	}{
		{chart.TotalRequests(), cfg.TotalRequestsPlot},
		{chart.AverageTime(), cfg.AverageTimePlot},
	}

	saved := make([]string, 0, len(charts))
	for _, c := range charts {
		path := cfg.ResultsPath(c.file)
		spec := c.spec.WithSize(cfg.FigureWidth, cfg.FigureHeight)
		if err := chart.Save(table, spec, path); err != nil {
			return saved, err
		}
		output.Logger.Debug("Rendered chart", "title", spec.Title, "file", path)
		saved = append(saved, path)
	}

	if cfg.ExportCSV != "" {
		path := cfg.ResultsPath(cfg.ExportCSV)
		if err := output.ExportCSV(path, table); err != nil {
			return saved, fmt.Errorf("failed to export CSV to %s: %w", path, err)
		}
		output.Logger.Info("Exported table", "format", "csv", "file", path)
	}
	if cfg.ExportJSONL != "" {
		path := cfg.ResultsPath(cfg.ExportJSONL)
		if err := output.ExportJSONLines(path, table); err != nil {
			return saved, fmt.Errorf("failed to export JSON Lines to %s: %w", path, err)
		}
		output.Logger.Info("Exported table", "format", "jsonl", "file", path)
	}

	return saved, nil
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&resultsDirOverride, "results-dir", "d", "", "Directory holding benchmark_*.json files (default: results)")
	cmd.Flags().StringVar(&exportCSVOverride, "export-csv", "", "Also write the aggregated table as CSV (filename inside the results dir)")
	cmd.Flags().StringVar(&exportJSONLOverride, "export-jsonl", "", "Also write the aggregated table as JSON Lines (filename inside the results dir)")
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addPlotFlags(plotCmd)
}
