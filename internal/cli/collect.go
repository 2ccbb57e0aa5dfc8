/*
PURPOSE:
  Defines the 'collect' and 'reset' subcommands.
  collect snapshots the benchmark server's /stats into the results directory;
  reset clears the server's counters between runs.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Collect(), internal/engine.Engine.Reset()

USAGE:
  bench-plot collect --url http://localhost:3000 --reset
  bench-plot reset
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-plot/internal/config"
	"github.com/daryltucker/bench-plot/internal/engine"
)

var (
	urlOverride    string
	collectDir     string
	resetAfterFlag bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Save the benchmark server's current stats as a result file",
	Long: `Fetches <url>/stats from the benchmark server and writes it to
<results-dir>/benchmark_YYYYMMDD_HHMMSS.json using the local clock.
The payload is checked against the same schema 'plot' requires.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig()
		if err != nil {
			return err
		}
		if collectDir != "" {
			cfg.ResultsDir = collectDir
		}
		if resetAfterFlag {
			cfg.ResetAfter = true
		}

		path, err := engine.Collect(cmd.Context(), cfg)
		if path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
		}
		return err
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the benchmark server's counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig()
		if err != nil {
			return err
		}
		if err := engine.New(cfg).Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", cfg.StatsURL)
		return nil
	},
}

func serverConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if urlOverride != "" {
		cfg.StatsURL = urlOverride
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(resetCmd)

	collectCmd.Flags().StringVar(&urlOverride, "url", "", "Benchmark server base URL (default: http://localhost:3000)")
	collectCmd.Flags().StringVarP(&collectDir, "results-dir", "d", "", "Directory to write the result file into (default: results)")
	collectCmd.Flags().BoolVar(&resetAfterFlag, "reset", false, "Reset the server's counters after a successful snapshot")
	resetCmd.Flags().StringVar(&urlOverride, "url", "", "Benchmark server base URL (default: http://localhost:3000)")
}
