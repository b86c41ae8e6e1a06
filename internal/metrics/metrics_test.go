package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsentAndDegradedAreCountedSeparately(t *testing.T) {
	m := New()

	m.Absent("fetchUser")
	m.Absent("fetchUser")
	m.Degraded("fetchUser")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EmptyReads().WithLabelValues("fetchUser", OutcomeAbsent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmptyReads().WithLabelValues("fetchUser", OutcomeDegraded)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Absent("x")
	m.Degraded("x")
	m.ObserveRequest("/", "200", time.Millisecond)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Degraded("getActivity")
	m.ObserveRequest("/api/activity", "200", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `threads_empty_reads_total{op="getActivity",outcome="degraded"} 1`)
	assert.Contains(t, string(body), `threads_http_requests_total{route="/api/activity",status="200"} 1`)
}
