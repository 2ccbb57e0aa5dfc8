package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/bench-plot/internal/results"
)

const sampleRecord = `{
  "sync": {"totalRequests": 100, "averageTimeMs": 50},
  "async": {"totalRequests": 120, "averageTimeMs": 40},
  "comparison": {"asyncMoreRequestsPercent": "20.0%", "averageTimeDifferencePercent": "N/A"}
}`

// run executes the root command inside a fresh working directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, logLevelOverride = "", "error"
	resultsDirOverride, exportCSVOverride, exportJSONLOverride = "", "", ""
	urlOverride, collectDir, resetAfterFlag = "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func setupResults(t *testing.T, files map[string]string) string {
	t.Helper()
	chdir(t, t.TempDir())
	require.NoError(t, os.Mkdir("results", 0755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join("results", name), []byte(body), 0644))
	}
	return "results"
}

func TestRoot_DefaultsToPlot(t *testing.T) {
	dir := setupResults(t, map[string]string{
		"benchmark_20240101_120000.json": sampleRecord,
		"benchmark_20240102_120000.json": sampleRecord,
	})

	out, err := run(t)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"Saved " + filepath.Join(dir, "plot_total_requests.png"),
		"Saved " + filepath.Join(dir, "plot_avg_time.png"),
	}, lines)
	assert.FileExists(t, filepath.Join(dir, "plot_total_requests.png"))
	assert.FileExists(t, filepath.Join(dir, "plot_avg_time.png"))
}

func TestPlot_EmptyResultsDirectory(t *testing.T) {
	dir := setupResults(t, nil)

	out, err := run(t, "plot")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Saved "))
	assert.FileExists(t, filepath.Join(dir, "plot_avg_time.png"))
}

func TestPlot_Exports(t *testing.T) {
	dir := setupResults(t, map[string]string{"benchmark_20240101_120000.json": sampleRecord})

	_, err := run(t, "plot", "-d", dir, "--export-csv", "table.csv", "--export-jsonl", "table.jsonl")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "table.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-01 12:00:00,100,120,50,40,20,0,0")
	assert.FileExists(t, filepath.Join(dir, "table.jsonl"))

	// Exports do not break the next aggregation.
	_, err = run(t, "plot", "-d", dir)
	require.NoError(t, err)
}

func TestPlot_Failures(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		chdir(t, t.TempDir())
		out, err := run(t)
		assert.ErrorIs(t, err, results.ErrResultsDirMissing)
		assert.Empty(t, out)
	})

	t.Run("malformed filename", func(t *testing.T) {
		setupResults(t, map[string]string{
			"benchmark_20240101_120000.json": sampleRecord,
			"benchmark_latest.json":          sampleRecord,
		})
		_, err := run(t, "plot")
		assert.ErrorIs(t, err, results.ErrTimestamp)
		assert.NoFileExists(t, filepath.Join("results", "plot_total_requests.png"))
	})

	t.Run("missing key", func(t *testing.T) {
		setupResults(t, map[string]string{
			"benchmark_20240101_120000.json": `{"sync": {"totalRequests": 1, "averageTimeMs": 1}}`,
		})
		_, err := run(t, "plot")
		assert.ErrorIs(t, err, results.ErrSchema)
	})
}

func TestCollect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleRecord))
	}))
	defer srv.Close()

	dir := setupResults(t, nil)
	out, err := run(t, "collect", "--url", srv.URL, "-d", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Saved "+filepath.Join(dir, "benchmark_")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out, err = run(t)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Saved "))
}
