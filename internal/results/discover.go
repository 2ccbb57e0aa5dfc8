/*
PURPOSE:
  Finds benchmark result files in a results directory and parses the run
  timestamp embedded in each filename.

IMPLEMENTATION RULES:
  - Lexicographic listing order (os.ReadDir sorts by name). Given the fixed
    filename pattern this is also chronological order; never re-sort.
  - Every *.json entry is treated as a result file. A name that does not carry
    a valid timestamp fails the whole run instead of being skipped.

RELATED FILES:
  - internal/results/aggregate.go
*/

package results

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/daryltucker/bench-plot/internal/model"
)

const (
	// FilePrefix and FileSuffix frame the timestamp in a result filename.
	FilePrefix = "benchmark_"
	FileSuffix = ".json"

	// TimestampLayout is the embedded timestamp layout (YYYYMMDD_HHMMSS).
	TimestampLayout = "20060102_150405"
)

// time.Parse accepts a single-digit hour for "15", so the digit count is
// checked separately.
var timestampPattern = regexp.MustCompile(`^\d{8}_\d{6}$`)

// FileName returns the result filename for a run started at t.
func FileName(t time.Time) string {
	return FilePrefix + t.Format(TimestampLayout) + FileSuffix
}

// ParseFileName extracts the run timestamp from a result filename.
func ParseFileName(name string) (time.Time, error) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)
	if !timestampPattern.MatchString(stamp) {
		return time.Time{}, &TimestampError{Name: name, Value: stamp}
	}
	ts, err := time.Parse(TimestampLayout, stamp)
	if err != nil {
		return time.Time{}, &TimestampError{Name: name, Value: stamp, Err: err}
	}
	return ts, nil
}

// Discover lists the result files in dir, in lexicographic order.
func Discover(dir string) ([]model.ResultFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResultsDirMissing, dir)
		}
		return nil, fmt.Errorf("failed to list results directory %s: %w", dir, err)
	}

	var files []model.ResultFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileSuffix) {
			continue
		}
		ts, err := ParseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, model.ResultFile{
			Path:      filepath.Join(dir, entry.Name()),
			Timestamp: ts,
		})
	}
	return files, nil
}
