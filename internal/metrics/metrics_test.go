package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	m, err := New()
	require.NoError(err)

	m.ObserveGuard("/jobs/:id", "redirect")
	m.ObserveGuard("/jobs/:id", "redirect")
	m.ObserveAuth("login", "success")
	m.ObserveRequest("GET", 200, time.Millisecond)

	assert.Equal(2.0, testutil.ToFloat64(m.guardDecisions.WithLabelValues("/jobs/:id", "redirect")))
	assert.Equal(1.0, testutil.ToFloat64(m.authOperations.WithLabelValues("login", "success")))
	assert.Equal(1, testutil.CollectAndCount(m.backendRequests))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(rr.Body.String(), "internhub_guard_decisions_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveGuard("/", "render")
	m.ObserveAuth("logout", "success")
	m.ObserveRequest("GET", 200, time.Second)

	called := false
	h := m.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
