package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics("ragtest")
	_ = NewMetrics("ragtest") // separate registries never collide

	m.CountRequest("/generate", "ok")
	m.CountRequest("/generate", "ok")
	m.CountRetrieval(0)
	m.CountRetrieval(3)
	m.CountExternalError("embedding")
	m.ObserveStage("rewrite", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/generate", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retrievals.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retrievals.WithLabelValues("hit")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ragtest_requests_total")
	assert.Contains(t, string(body), "ragtest_stage_latency_ms_bucket")
}
