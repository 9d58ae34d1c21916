package providers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"represent/internal/representatives/metrics"
	"represent/pkg/requestcontext"
)

type payload struct {
	Name string `json:"name"`
}

type callerFixture struct {
	caller  *Caller
	url     string
	logs    *bytes.Buffer
	metrics *metrics.Metrics
}

func newTestCaller(t *testing.T, h http.HandlerFunc, timeout time.Duration) callerFixture {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := metrics.New(prometheus.NewRegistry())
	c := NewCaller("test_provider", srv.Client(), timeout, NewObserver(logger, m))
	return callerFixture{caller: c, url: srv.URL + "/v1/people", logs: &buf, metrics: m}
}

func TestCaller_GetJSON(t *testing.T) {
	t.Run("decodes success and forwards headers", func(t *testing.T) {
		var gotKey, gotReqID string
		f := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("X-API-Key")
			gotReqID = r.Header.Get("X-Request-ID")
			_, _ = w.Write([]byte(`{"name":"ok"}`))
		}, time.Second)

		ctx := requestcontext.WithRequestID(context.Background(), "req-1")
		var out payload
		err := f.caller.GetJSON(ctx, "people", f.url, http.Header{"X-API-Key": {"secret"}}, &out)

		require.NoError(t, err)
		assert.Equal(t, "ok", out.Name)
		assert.Equal(t, "secret", gotKey)
		assert.Equal(t, "req-1", gotReqID)
		assert.Contains(t, f.logs.String(), `"outcome":"success"`)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ExternalCalls.WithLabelValues("test_provider", "people", "success")))
	})

	t.Run("categorizes non-2xx", func(t *testing.T) {
		f := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}, time.Second)

		err := f.caller.GetJSON(context.Background(), "people", f.url, nil, &payload{})

		require.Error(t, err)
		assert.Equal(t, ErrorRateLimited, GetCategory(err))
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
		assert.Contains(t, f.logs.String(), "external call failed")
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ExternalCalls.WithLabelValues("test_provider", "people", "rate_limited")))
	})

	t.Run("undecodable body is bad data", func(t *testing.T) {
		f := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}, time.Second)

		err := f.caller.GetJSON(context.Background(), "people", f.url, nil, &payload{})
		assert.Equal(t, ErrorBadData, GetCategory(err))
	})

	t.Run("slow upstream times out", func(t *testing.T) {
		f := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}, 50*time.Millisecond)

		err := f.caller.GetJSON(context.Background(), "people", f.url, nil, &payload{})
		assert.Equal(t, ErrorTimeout, GetCategory(err))
	})

	t.Run("unreachable host is an outage", func(t *testing.T) {
		c := NewCaller("test_provider", &http.Client{}, time.Second, nil)
		err := c.GetJSON(context.Background(), "people", "http://127.0.0.1:1/none", nil, &payload{})
		assert.Equal(t, ErrorProviderOutage, GetCategory(err))
	})
}
