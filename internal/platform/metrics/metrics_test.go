package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTP_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTP(reg)

	m.ObserveRequest(http.MethodGet, "/representatives", http.StatusOK, 120*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/representatives", http.StatusOK, 80*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/representatives", http.StatusNotFound, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/representatives", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/representatives", "404")))
}

func TestHTTP_NilSafe(t *testing.T) {
	var m *HTTP
	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewHTTP(reg).ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "represent_http_requests_total")
}
