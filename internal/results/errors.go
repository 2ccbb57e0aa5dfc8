package results

import (
	"errors"
	"fmt"
)

var (
	// ErrResultsDirMissing is returned when the results directory does not exist.
	ErrResultsDirMissing = errors.New("results directory not found")
	// ErrTimestamp is returned when a result filename does not carry a valid timestamp.
	ErrTimestamp = errors.New("invalid result filename timestamp")
	// ErrSchema is returned when a result file lacks a required key.
	ErrSchema = errors.New("result file schema error")
)

// TimestampError reports a filename whose embedded timestamp does not match
// the YYYYMMDD_HHMMSS pattern.
type TimestampError struct {
	Name  string
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q in %s: %v", ErrTimestamp, e.Value, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %q in %s does not match YYYYMMDD_HHMMSS", ErrTimestamp, e.Value, e.Name)
}

func (e *TimestampError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTimestamp}
	}
	return []error{ErrTimestamp, e.Err}
}

// SchemaError reports a required key missing from a result file.
// Key is the dotted path, e.g. "sync.totalRequests".
type SchemaError struct {
	Path string
	Key  string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: missing key %q", ErrSchema, e.Key)
	}
	return fmt.Sprintf("%s: missing key %q in %s", ErrSchema, e.Key, e.Path)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
