package monitoring

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRefresh(t *testing.T) {
	s := NewService(Config{})

	s.ObserveRefresh(RefreshStats{Took: 2 * time.Millisecond, Sensors: 6, Anomalous: 2, WindowAnomalies: 9, Connected: true})
	s.ObserveRefresh(RefreshStats{Took: time.Millisecond, Sensors: 6, Anomalous: 1, WindowAnomalies: 7})

	assert.Equal(t, 2.0, testutil.ToFloat64(s.refreshes))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.anomalies))
	assert.Equal(t, 7.0, testutil.ToFloat64(s.windowAnomalies))
	assert.Equal(t, 6.0, testutil.ToFloat64(s.sensors))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.connected))
}

func TestRecordEvent(t *testing.T) {
	s := NewService(Config{Namespace: "test"})
	s.RecordEvent("anomaly_detected", map[string]string{"types": "Gas"})
	s.RecordEvent("anomaly_detected", nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(s.events.WithLabelValues("anomaly_detected")))
}

func TestHandler(t *testing.T) {
	s := NewService(Config{})
	s.ObserveRefresh(RefreshStats{Took: time.Millisecond, Sensors: 6, WindowAnomalies: 4, Connected: true})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sensordash_refresh_ticks_total 1")
	assert.Contains(t, string(body), "sensordash_connected 1")
	assert.Contains(t, string(body), "sensordash_window_anomalies 4")
	assert.Contains(t, string(body), "sensordash_anomalous_readings_total 0")
}
