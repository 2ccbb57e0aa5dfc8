/*
PURPOSE:
  Defines the configuration structure and loading logic for bench-plot.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Zero-config run: read ./results, write the two plots next to the inputs.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - The collector needs the benchmark server URL and a retry policy.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default config file is not an error (defaults are used).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults reproduce the classic results/ layout.

USAGE:
  cfg, err := config.Load("bench_plot.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and DefaultConfig().

RELATED FILES:
  - internal/cli/root.go
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFiles are searched in order when no --config is given.
var DefaultFiles = []string{"bench_plot.yaml", "bench-plot.yaml"}

// Config represents the full configuration for bench-plot.
type Config struct {
	ResultsDir string `yaml:"results_dir"`
	LogLevel   string `yaml:"log_level"`

	// Output filenames, relative to ResultsDir.
	TotalRequestsPlot string `yaml:"total_requests_plot"`
	AverageTimePlot   string `yaml:"avg_time_plot"`
	// Optional table exports; empty disables.
	ExportCSV   string `yaml:"export_csv"`
	ExportJSONL string `yaml:"export_jsonl"`

	// Figure size in inches.
	FigureWidth  float64 `yaml:"figure_width"`
	FigureHeight float64 `yaml:"figure_height"`

	// Collector settings.
	StatsURL       string        `yaml:"stats_url"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ResetAfter     bool          `yaml:"reset_after_collect"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ResultsDir:        "results",
		LogLevel:          "info",
		TotalRequestsPlot: "plot_total_requests.png",
		AverageTimePlot:   "plot_avg_time.png",
		FigureWidth:       12,
		FigureHeight:      6,
		StatsURL:          "http://localhost:3000",
		MaxRetries:        3,
		RetryDelay:        2 * time.Second,
		RequestTimeout:    10 * time.Second,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the fields that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if c.ResultsDir == "" {
		errs = append(errs, errors.New("results_dir must not be empty"))
	}
	if c.TotalRequestsPlot == "" || c.AverageTimePlot == "" {
		errs = append(errs, errors.New("plot filenames must not be empty"))
	}
	if c.FigureWidth <= 0 || c.FigureHeight <= 0 {
		errs = append(errs, fmt.Errorf("figure size must be positive, got %gx%g", c.FigureWidth, c.FigureHeight))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries))
	}
	return errors.Join(errs...)
}

// ResultsPath joins name onto the results directory.
func (c *Config) ResultsPath(name string) string {
	return filepath.Join(c.ResultsDir, name)
}
