package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsServer(t *testing.T) {
	apiMetrics := NewAPIMetrics(prometheus.NewRegistry())
	server := NewMetricsServer(9090, apiMetrics, nil, zerolog.Nop())

	require.NotNil(t, server)
	assert.Equal(t, 9090, server.port)
	assert.Same(t, apiMetrics, server.apiMetrics)
	assert.NotNil(t, server.server)
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	apiMetrics := NewAPIMetrics(reg)
	apiMetrics.RecordAPIRequest("GET", "/api/l1s", "200", 0.01)

	server := NewMetricsServer(0, apiMetrics, reg, zerolog.Nop())
	server.collectSystemMetrics()

	code, body := get(t, server.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	assert.Contains(t, body, `api_requests_total{endpoint="/api/l1s",method="GET",status="200"} 1`)
	assert.Contains(t, body, "system_goroutines_count")
}

func TestHealthEndpoint(t *testing.T) {
	server := NewMetricsServer(0, nil, prometheus.NewRegistry(), zerolog.Nop())

	code, body := get(t, server.Handler(), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}

func TestServerShutdown(t *testing.T) {
	port := 19092
	server := NewMetricsServer(port, nil, prometheus.NewRegistry(), zerolog.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	require.NoError(t, <-errCh)

	// second shutdown is harmless
	assert.NoError(t, server.Shutdown(ctx))

	_, err := http.Get(fmt.Sprintf("http://localhost:%d/health", port))
	assert.Error(t, err)
}
