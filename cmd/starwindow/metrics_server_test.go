package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star/starwindow/internal/metrics"
)

func TestServeMetrics(t *testing.T) {
	m := metrics.New()
	m.AddWindows(4)

	addr, stop, err := serveMetrics("127.0.0.1:0", m, testLogger)
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "starwindow_windows_found_total 4")

	stop()
	_, err = http.Get("http://" + addr.String() + "/metrics")
	assert.Error(t, err, "server should be closed after stop")
}

func TestServeMetricsBadAddr(t *testing.T) {
	_, _, err := serveMetrics("not-an-address", metrics.New(), testLogger)
	assert.Error(t, err)
}

func TestWindowsWithMetricsAddr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iss.txt")
	require.NoError(t, os.WriteFile(path, []byte(issTLE), 0644))

	out, stderr, err := execute(t, "windows",
		"--tle-file", path,
		"--lat", "40.7128", "--lon", "-74.006",
		"--start", "2025-02-14T12:00:00Z", "--hours", "6",
		"--metrics-addr", "127.0.0.1:0",
	)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, stderr, "serving metrics")
	// No text dump without --metrics.
	assert.NotContains(t, stderr, "# TYPE")
}
