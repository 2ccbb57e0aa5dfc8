/*
PURPOSE:
  Defines the core data structures used throughout bench-plot.
  These models represent benchmark result files, the records parsed from them,
  and the normalized time series the charts are drawn from.

REQUIREMENTS:
  User-specified:
  - Track sync/async total requests and average request time per run.
  - Track the comparison percentages reported by the benchmark server.

  Implementation-discovered:
  - averageTimeMs arrives string-encoded ("12.34") from the server.
  - Comparison percentages are strings ("20.00%") or "N/A" (also "N/A%").

ARCHITECTURE INTEGRATION:
  - Used by: internal/results, internal/chart, internal/output, internal/engine
  - Shared across boundaries.

ERROR HANDLING:
  - Unmarshalers return explicit errors for malformed numeric strings.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Optional values are explicit (Valid flag), normalized to zero only at the edge.

USAGE:
  row := model.TimeSeriesRow{...}
  table.Append(row)

RELATED FILES:
  - internal/results/aggregate.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when the benchmark server adds new fields to /stats.
*/

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is the sentinel the benchmark server reports when a comparison
// cannot be computed (e.g. division by zero).
const NotAvailable = "N/A"

// LabelLayout is the layout used for timestamp labels on chart axes and exports.
const LabelLayout = "2006-01-02 15:04:05"

// ResultFile is a benchmark result file discovered on disk.
type ResultFile struct {
	Path      string
	Timestamp time.Time
}

// Side holds the counters for one request mode (sync or async).
type Side struct {
	TotalRequests int64   `json:"totalRequests"`
	AverageTimeMs float64 `json:"averageTimeMs"`
}

// Comparison holds the derived metrics reported next to the raw counters.
type Comparison struct {
	AsyncMoreRequestsPercent     Percent `json:"asyncMoreRequestsPercent"`
	AverageTimeDifferencePercent Percent `json:"averageTimeDifferencePercent"`
	AsyncSlowdownRatio           Ratio   `json:"averageTimeAsyncSlowerThanSync"`
}

// BenchmarkRecord is one parsed result document.
type BenchmarkRecord struct {
	Sync       Side       `json:"sync"`
	Async      Side       `json:"async"`
	Comparison Comparison `json:"comparison"`
}

// TimeSeriesRow is the numeric projection of a BenchmarkRecord keyed by its run timestamp.
type TimeSeriesRow struct {
	Timestamp            time.Time `json:"timestamp"`
	SyncRequests         int64     `json:"sync_requests"`
	AsyncRequests        int64     `json:"async_requests"`
	SyncAvgMs            float64   `json:"sync_avg_ms"`
	AsyncAvgMs           float64   `json:"async_avg_ms"`
	AsyncMoreRequestsPct float64   `json:"async_more_requests_pct"`
	AsyncFasterTimePct   float64   `json:"async_faster_time_pct"`
	AsyncSlowdownRatio   float64   `json:"async_slowdown_ratio"`
}

// Number is a JSON number that may also arrive string-encoded.
type Number float64

// UnmarshalJSON accepts both 12.5 and "12.5".
func (n *Number) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Percent is a comparison percentage that may be absent ("N/A").
type Percent struct {
	Value float64
	Valid bool
}

// ParsePercent parses "20.00%", "20" or "N/A". The trailing % is optional.
func ParsePercent(s string) (Percent, error) {
	v := strings.TrimSuffix(strings.TrimSpace(s), "%")
	if v == NotAvailable {
		return Percent{}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return Percent{Value: f, Valid: true}, nil
}

// Float normalizes an absent percentage to zero.
func (p Percent) Float() float64 {
	if !p.Valid {
		return 0
	}
	return p.Value
}

func (p Percent) String() string {
	if !p.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64) + "%"
}

// UnmarshalJSON accepts the string forms handled by ParsePercent and bare numbers.
func (p *Percent) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	parsed, err := ParsePercent(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON writes the same string form the benchmark server emits.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Ratio is the optional async/sync slowdown factor ("1.25x" or "N/A").
type Ratio struct {
	Value float64
	Valid bool
}

// ParseRatio parses "1.25x", "1.25" or "N/A".
func ParseRatio(s string) (Ratio, error) {
	v := strings.TrimSuffix(strings.TrimSpace(s), "x")
	if v == NotAvailable {
		return Ratio{}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	return Ratio{Value: f, Valid: true}, nil
}

// Float normalizes an absent ratio to zero.
func (r Ratio) Float() float64 {
	if !r.Valid {
		return 0
	}
	return r.Value
}

func (r Ratio) String() string {
	if !r.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64) + "x"
}

// UnmarshalJSON accepts the string forms handled by ParseRatio and bare numbers.
func (r *Ratio) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	parsed, err := ParseRatio(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON writes the same string form the benchmark server emits.
func (r Ratio) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// ErrRowOrder is returned when a row would break ascending timestamp order.
var ErrRowOrder = errors.New("rows must have strictly ascending timestamps")

// Table is the ordered time series built from a results directory.
// Rows are unique per timestamp and sorted ascending.
type Table struct {
	Rows []TimeSeriesRow `json:"rows"`
}

// Append adds a row, rejecting duplicate or out-of-order timestamps.
func (t *Table) Append(r TimeSeriesRow) error {
	if n := len(t.Rows); n > 0 && !t.Rows[n-1].Timestamp.Before(r.Timestamp) {
		return fmt.Errorf("%w: %s follows %s", ErrRowOrder,
			r.Timestamp.Format(LabelLayout), t.Rows[n-1].Timestamp.Format(LabelLayout))
	}
	t.Rows = append(t.Rows, r)
	return nil
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Labels returns one x-axis label per row.
func (t Table) Labels() []string {
	labels := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		labels[i] = r.Timestamp.Format(LabelLayout)
	}
	return labels
}

// Column projects one numeric column out of the table.
func (t Table) Column(value func(TimeSeriesRow) float64) []float64 {
	col := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		col[i] = value(r)
	}
	return col
}
