package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/daryltucker/bench-plot/internal/model"
)

// Wire shapes use pointers so a missing key can be told apart from a zero value.
type wireSide struct {
	TotalRequests *int64        `json:"totalRequests"`
	AverageTimeMs *model.Number `json:"averageTimeMs"`
}

type wireComparison struct {
	AsyncMoreRequestsPercent     *model.Percent `json:"asyncMoreRequestsPercent"`
	AverageTimeDifferencePercent *model.Percent `json:"averageTimeDifferencePercent"`
	AsyncSlowdownRatio           *model.Ratio   `json:"averageTimeAsyncSlowerThanSync"`
}

type wireRecord struct {
	Sync       *wireSide       `json:"sync"`
	Async      *wireSide       `json:"async"`
	Comparison *wireComparison `json:"comparison"`
}

// Decode parses one result document and checks that every required key is present.
func Decode(r io.Reader) (model.BenchmarkRecord, error) {
	var w wireRecord
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return model.BenchmarkRecord{}, fmt.Errorf("failed to decode result: %w", err)
	}
	return w.record()
}

// Load reads and decodes a result file. The file is closed before returning.
func Load(path string) (model.BenchmarkRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.BenchmarkRecord{}, fmt.Errorf("failed to open result file %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = path
			return rec, se
		}
		return rec, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func (w wireRecord) record() (model.BenchmarkRecord, error) {
	var rec model.BenchmarkRecord

	sync, err := w.Sync.side("sync")
	if err != nil {
		return rec, err
	}
	async, err := w.Async.side("async")
	if err != nil {
		return rec, err
	}
	if w.Comparison == nil {
		return rec, &SchemaError{Key: "comparison"}
	}
	if w.Comparison.AsyncMoreRequestsPercent == nil {
		return rec, &SchemaError{Key: "comparison.asyncMoreRequestsPercent"}
	}
	if w.Comparison.AverageTimeDifferencePercent == nil {
		return rec, &SchemaError{Key: "comparison.averageTimeDifferencePercent"}
	}

	rec.Sync = sync
	rec.Async = async
	rec.Comparison.AsyncMoreRequestsPercent = *w.Comparison.AsyncMoreRequestsPercent
	rec.Comparison.AverageTimeDifferencePercent = *w.Comparison.AverageTimeDifferencePercent
	// Older server builds do not report the slowdown ratio.
	if w.Comparison.AsyncSlowdownRatio != nil {
		rec.Comparison.AsyncSlowdownRatio = *w.Comparison.AsyncSlowdownRatio
	}
	return rec, nil
}

func (s *wireSide) side(name string) (model.Side, error) {
	if s == nil {
		return model.Side{}, &SchemaError{Key: name}
	}
	if s.TotalRequests == nil {
		return model.Side{}, &SchemaError{Key: name + ".totalRequests"}
	}
	if s.AverageTimeMs == nil {
		return model.Side{}, &SchemaError{Key: name + ".averageTimeMs"}
	}
	return model.Side{
		TotalRequests: *s.TotalRequests,
		AverageTimeMs: float64(*s.AverageTimeMs),
	}, nil
}
