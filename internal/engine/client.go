/*
PURPOSE:
  HTTP client for the sync/async file-read benchmark server.
  Fetches the running counters (/stats) and clears them (/reset).

REQUIREMENTS:
  User-specified:
  - Snapshot the server's stats into the results directory.

  Implementation-discovered:
  - The server may still be starting; retry transient failures.
  - /stats is validated with the same schema checks as files on disk.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, internal/cli
  - Uses: internal/config, internal/results

ERROR HANDLING:
  - Retries MaxRetries times with RetryDelay; returns the last error.
  - Schema errors are not retried.

RELATED FILES:
  - internal/results/record.go
*/

package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daryltucker/bench-plot/internal/config"
	"github.com/daryltucker/bench-plot/internal/model"
	"github.com/daryltucker/bench-plot/internal/output"
	"github.com/daryltucker/bench-plot/internal/results"
)

// Engine handles benchmark server interactions.
type Engine struct {
	Config *config.Config
	Client *http.Client

	now func() time.Time
}

// New creates a new Engine.
func New(cfg *config.Config) *Engine {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.RequestTimeout

	return &Engine{
		Config: cfg,
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout * 2,
		},
		now: time.Now,
	}
}

func (e *Engine) endpoint(path string) string {
	return strings.TrimRight(e.Config.StatsURL, "/") + path
}

// get performs a GET with retries and returns the body of the first 200 response.
func (e *Engine) get(ctx context.Context, path string) ([]byte, error) {
	url := e.endpoint(path)

	var lastErr error
	for i := 0; i < e.Config.MaxRetries; i++ {
		if i > 0 {
			output.Logger.Info("Retrying request...", "url", url, "attempt", i+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.Config.RetryDelay):
			}
		}

		body, err := e.getOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		output.Logger.Warn("Request failed", "url", url, "attempt", i+1, "error", err)
		lastErr = err
	}
	return nil, fmt.Errorf("GET %s failed after %d attempts: %w", url, e.Config.MaxRetries, lastErr)
}

func (e *Engine) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}
	return body, nil
}

// FetchStats returns the server's current stats, decoded and as raw JSON.
func (e *Engine) FetchStats(ctx context.Context) (model.BenchmarkRecord, []byte, error) {
	body, err := e.get(ctx, "/stats")
	if err != nil {
		return model.BenchmarkRecord{}, nil, err
	}
	rec, err := results.Decode(bytes.NewReader(body))
	if err != nil {
		return model.BenchmarkRecord{}, nil, fmt.Errorf("unexpected /stats payload: %w", err)
	}
	return rec, body, nil
}

// Reset clears the server's counters.
func (e *Engine) Reset(ctx context.Context) error {
	_, err := e.get(ctx, "/reset")
	return err
}
