/*
PURPOSE:
  Writes the aggregated benchmark time series to a JSON Lines file (NDJSON).
  Optimized for machine parsing (jq, vecq).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot --export-jsonl)
  - Consumes: internal/model.TimeSeriesRow

ERROR HANDLING:
  - Returns error on file creation or write failure.

USAGE:
  w, err := output.NewJSONWriter("results/benchmark_table.jsonl")
  w.Write(row)
  w.Close()
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/bench-plot/internal/model"
)

// JSONWriter handles writing rows to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single row as a JSON line.
func (jw *JSONWriter) Write(r model.TimeSeriesRow) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}

// ExportJSONLines writes every row of t to path, one object per line.
func ExportJSONLines(path string, t model.Table) (err error) {
	w, err := NewJSONWriter(path)
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
