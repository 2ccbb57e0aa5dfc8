/*
PURPOSE:
  Writes the aggregated benchmark time series to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Export the table behind the charts for spreadsheets.

  Implementation-discovered:
  - Column names match the time series fields (sync_requests, ...).
  - Overwrites any previous export.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot --export-csv)
  - Consumes: internal/model.TimeSeriesRow

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("results/benchmark_table.csv")
  w.Write(row)
  w.Close()

MAINTENANCE:
  - Update Write() mapping when TimeSeriesRow changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/bench-plot/internal/model"
)

// CSVHeader is the first line of every CSV export.
var CSVHeader = []string{
	"timestamp", "sync_requests", "async_requests",
	"sync_avg_ms", "async_avg_ms",
	"async_more_requests_pct", "async_faster_time_pct", "async_slowdown_ratio",
}

// CSVWriter handles writing rows to a CSV file.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	cw, err := newCSVWriter(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cw, nil
}

func newCSVWriter(w io.Writer, c io.Closer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{closer: c, writer: cw}, nil
}

// Write writes a single row to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.TimeSeriesRow) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.Timestamp.Format(model.LabelLayout),
		strconv.FormatInt(r.SyncRequests, 10),
		strconv.FormatInt(r.AsyncRequests, 10),
		formatFloat(r.SyncAvgMs),
		formatFloat(r.AsyncAvgMs),
		formatFloat(r.AsyncMoreRequestsPct),
		formatFloat(r.AsyncFasterTimePct),
		formatFloat(r.AsyncSlowdownRatio),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	if cw.closer == nil {
		return cw.writer.Error()
	}
	return cw.closer.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ExportCSV writes every row of t to path.
func ExportCSV(path string, t model.Table) (err error) {
	w, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	for _, r := range t.Rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
