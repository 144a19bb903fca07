package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetricsRegistered(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")
	HTTPRequestDuration.WithLabelValues("GET", "/health", "200")
	AuthEvents.WithLabelValues(EventLogin, "success")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}

	for _, name := range []string{"http_requests_total", "http_request_duration_seconds", "http_requests_in_flight", "auth_events_total"} {
		assert.True(t, names[name], "expected metric %q to be registered", name)
	}
}

func TestRecordAuthEvent(t *testing.T) {
	c := AuthEvents.WithLabelValues(EventRefresh, "expired_refresh_token")
	before := counterValue(t, c)

	RecordAuthEvent(EventRefresh, "expired_refresh_token")
	RecordAuthEvent(EventRefresh, "expired_refresh_token")

	assert.Equal(t, before+2, counterValue(t, c))
}
