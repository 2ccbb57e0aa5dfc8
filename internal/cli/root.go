/*
PURPOSE:
  Defines the root Cobra command for the bench-plot CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Running the binary with no arguments renders the plots from ./results.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Ctrl-C must cancel in-flight collector requests.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/bench-plot/main.go
  - Calls: Child commands (plot, collect, reset)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Root delegates to plot so the zero-flag invocation keeps working.

RELATED FILES:
  - cmd/bench-plot/main.go
*/

package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-plot/internal/config"
	"github.com/daryltucker/bench-plot/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile          string
	logLevelOverride string

	rootCmd = &cobra.Command{
		Use:   "bench-plot",
		Short: "Chart sync vs async file-read benchmark results over time",
		Long: `Aggregates results/benchmark_YYYYMMDD_HHMMSS.json files and renders
results/plot_total_requests.png and results/plot_avg_time.png.
Without a subcommand it behaves like 'plot'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runPlot,
	}
)

// Execute executes the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig loads the config file and applies global overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevelOverride != "" {
		cfg.LogLevel = logLevelOverride
	}
	output.SetLogger(output.NewLogger(os.Stderr, cfg.LogLevel))
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bench_plot.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "log level: debug, info, warn, error")
	addPlotFlags(rootCmd)
}
